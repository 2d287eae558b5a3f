package contacts

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	items []Contact
}

func (r *testRepo) Add(ctx context.Context, c Contact) (int64, error) {
	c.ID = int64(len(r.items) + 1)
	r.items = append(r.items, c)
	return c.ID, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Contact, error) {
	out := []Contact{}
	for _, c := range r.items {
		if c.PetID == petID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestAdd_Defaults(t *testing.T) {
	svc := NewService(&testRepo{})

	c, err := svc.Add(context.Background(), AddInput{PetID: " Frida ", Name: " Tincho ", Phone: " +54 9 11 "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID != 1 || c.PetID != "frida" || c.Name != "Tincho" || c.Phone != "+54 9 11" {
		t.Fatalf("unexpected contact: %+v", c)
	}
	if c.Label != DefaultLabel || c.Priority != 1 {
		t.Fatalf("expected default label and priority, got %q %d", c.Label, c.Priority)
	}
}

func TestAdd_RequiresPetAndName(t *testing.T) {
	svc := NewService(&testRepo{})

	for _, in := range []AddInput{{PetID: "frida"}, {Name: "Tincho"}} {
		if _, err := svc.Add(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestListByPet_NormalizesID(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddInput{PetID: "frida", Name: "Tincho"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, AddInput{PetID: "luna", Name: "Vecina"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.ListByPet(ctx, "FRIDA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Tincho" {
		t.Fatalf("unexpected contacts: %+v", got)
	}

	if _, err := svc.ListByPet(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty pet, got %v", err)
	}
}
