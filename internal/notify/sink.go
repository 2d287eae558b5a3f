package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-qr-tracker/internal/platform/httpclient"
)

var (
	ErrSinkDelivery = errors.New("sink delivery failed")
	ErrNoSink       = errors.New("no sink configured")
)

// Sink es el transporte saliente. El dispatcher solo mira si Send devolvió error.
type Sink interface {
	Name() string
	Send(ctx context.Context, m Message) error
	Close() error
}

// WebhookSink hace POST del mensaje como JSON.
type WebhookSink struct {
	url     string
	headers map[string]string
	client  *httpclient.Client
}

func NewWebhookSink(rawURL string, timeout time.Duration, headers map[string]string) (*WebhookSink, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrNoSink
	}
	if err := httpclient.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	return &WebhookSink{
		url:     rawURL,
		headers: headers,
		client:  httpclient.New(timeout),
	}, nil
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Send(ctx context.Context, m Message) error {
	if err := s.client.PostJSON(ctx, s.url, s.headers, m); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkDelivery, err)
	}
	return nil
}

func (s *WebhookSink) Close() error { return nil }

// MultiSink manda a varios sinks; falla si alguno falla (los demás igual reciben).
type MultiSink []Sink

func (m MultiSink) Name() string {
	names := make([]string, 0, len(m))
	for _, s := range m {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

func (m MultiSink) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
