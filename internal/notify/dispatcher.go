package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-qr-tracker/internal/metrics"
	"pet-qr-tracker/internal/platform/logger"
)

const (
	DefaultQueueSize   = 256
	DefaultWorkers     = 2
	DefaultSendTimeout = 10 * time.Second
)

// ErrAlreadyRunning: Run se puede llamar una sola vez por Dispatcher.
var ErrAlreadyRunning = errors.New("dispatcher already started")

type Options struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// Dispatcher desacopla el envío del request: Enqueue nunca bloquea y
// los workers mandan al sink con su propio timeout. No hay reintentos.
type Dispatcher struct {
	sink    Sink
	log     logger.Logger
	timeout time.Duration
	workers int

	mu      sync.RWMutex
	started bool
	closed  bool
	queue   chan Message
}

// NewDispatcher con sink nil devuelve un dispatcher que descarta todo (no-op).
func NewDispatcher(sink Sink, opts Options, log logger.Logger) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = DefaultSendTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Dispatcher{
		sink:    sink,
		log:     log.With(map[string]any{"component": "notify"}),
		timeout: opts.SendTimeout,
		workers: opts.Workers,
		queue:   make(chan Message, opts.QueueSize),
	}
}

// Enabled indica si hay un sink configurado.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.sink != nil
}

// Enqueue agenda el envío. Devuelve false si no hay sink, si ya se cerró
// o si la cola está llena (en ese caso el mensaje se pierde y se loguea).
func (d *Dispatcher) Enqueue(m Message) bool {
	if !d.Enabled() {
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.NotificationsDropped.Inc()
		return false
	}

	select {
	case d.queue <- m:
		metrics.NotifyQueueDepth.Inc()
		return true
	default:
		metrics.NotificationsDropped.Inc()
		d.log.Warn("notification queue full, dropping", map[string]any{
			"kind":   string(m.Kind),
			"pet_id": m.PetID,
			"msg_id": m.ID,
		})
		return false
	}
}

// Run levanta los workers y bloquea hasta que ctx se cancela.
// Al salir cierra la cola y espera a que se vacíe (cada envío sigue acotado por el timeout).
// Una segunda llamada, aun después del apagado, devuelve ErrAlreadyRunning.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	d.started = true
	d.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range d.queue {
				metrics.NotifyQueueDepth.Dec()
				d.deliver(m)
			}
		}()
	}

	<-ctx.Done()

	d.mu.Lock()
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	wg.Wait()

	if d.sink != nil {
		if err := d.sink.Close(); err != nil {
			d.log.Warn("sink close failed", map[string]any{"error": err})
		}
	}
	return nil
}

func (d *Dispatcher) deliver(m Message) {
	// No hereda el ctx de Run: los mensajes en cola se mandan aunque estemos apagando.
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.sink.Send(ctx, m)
	fields := map[string]any{
		"sink":        d.sink.Name(),
		"kind":        string(m.Kind),
		"pet_id":      m.PetID,
		"msg_id":      m.ID,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if err != nil {
		if !errors.Is(err, ErrSinkDelivery) {
			err = errors.Join(ErrSinkDelivery, err)
		}
		metrics.NotificationsFailed.WithLabelValues(d.sink.Name(), string(m.Kind)).Inc()
		fields["error"] = err
		d.log.Warn("notification not delivered", fields)
		return
	}

	metrics.NotificationsSent.WithLabelValues(d.sink.Name(), string(m.Kind)).Inc()
	d.log.Debug("notification delivered", fields)
}
