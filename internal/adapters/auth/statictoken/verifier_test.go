package statictoken

import (
	"context"
	"errors"
	"testing"
)

func TestVerifier(t *testing.T) {
	v := NewVerifier(" s3cret ")
	ctx := context.Background()

	c, err := v.Verify(ctx, "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Admin || c.Subject != "admin" {
		t.Fatalf("unexpected claims: %+v", c)
	}

	if _, err := v.Verify(ctx, "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := v.Verify(ctx, "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
	if _, err := NewVerifier("").Verify(ctx, "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
