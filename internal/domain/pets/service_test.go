package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return ErrAlreadyExists
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) UpdateProfile(ctx context.Context, id string, prof Profile) error {
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Profile = prof
	r.byID[id] = p
	return nil
}

func (r *testRepo) SetStatus(ctx context.Context, id string, s Status) error {
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = s
	r.byID[id] = p
	return nil
}

func (r *testRepo) SetHome(ctx context.Context, id string, home *geo.Point) error {
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Home = home
	r.byID[id] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func strPtr(s string) *string { return &s }

// -------------------------
// Tests
// -------------------------

func TestCreate_NormalizesAndDefaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{ID: "  Frida ", Name: " Frida "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != "frida" || p.Name != "Frida" {
		t.Fatalf("expected normalized id/name, got %q %q", p.ID, p.Name)
	}
	if p.Status != StatusLost {
		t.Fatalf("expected default status lost, got %q", p.Status)
	}
	if p.Photo != DefaultPhoto {
		t.Fatalf("expected default photo, got %q", p.Photo)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []CreateInput{
		{ID: "", Name: "x"},
		{ID: "frida!", Name: "x"},
		{ID: "con espacio", Name: "x"},
		{ID: "frida", Name: "   "},
		{ID: "frida", Name: "Frida", Status: "missing"},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}

	if _, err := svc.Create(ctx, CreateInput{ID: "frida", Name: "Frida"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{ID: "FRIDA", Name: "Otra"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateProfile_OnlyTouchesGivenFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{ID: "frida", Name: "Frida"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.UpdateProfile(ctx, "frida", ProfileInput{Breed: strPtr(" Mestiza "), Reward: strPtr("$$$")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Name != "Frida" || p.Breed != "Mestiza" || p.Reward != "$$$" {
		t.Fatalf("unexpected profile: %+v", p.Profile)
	}

	if _, err := svc.UpdateProfile(ctx, "frida", ProfileInput{Name: strPtr("")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected empty name to be rejected, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, "rocky", ProfileInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusAndHome(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{ID: "frida", Name: "Frida"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetStatus(ctx, "frida", "perdida"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	p, err := svc.SetStatus(ctx, "Frida", StatusHome)
	if err != nil || p.Status != StatusHome {
		t.Fatalf("set status: %v %+v", err, p)
	}

	if _, err := svc.SetHomeLocation(ctx, "frida", 91, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected out of range home to fail, got %v", err)
	}
	p, err = svc.SetHomeLocation(ctx, "frida", -34.6, -58.4)
	if err != nil {
		t.Fatalf("set home: %v", err)
	}
	if _, ok := p.UsableHome(); !ok {
		t.Fatalf("expected usable home")
	}

	p, err = svc.ClearHomeLocation(ctx, "frida")
	if err != nil || p.Home != nil {
		t.Fatalf("clear home: %v %+v", err, p.Home)
	}
}

func TestUsableHome_ZeroMeansUnset(t *testing.T) {
	p := Pet{Home: &geo.Point{Lat: 0, Lon: -58.4}}
	if _, ok := p.UsableHome(); ok {
		t.Fatalf("expected zero latitude to be treated as unset")
	}
}

func TestEnsureDefault(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureDefault(ctx, "frida", "Frida")
	if err != nil || !created {
		t.Fatalf("expected default to be created: %v", err)
	}
	created, err = svc.EnsureDefault(ctx, "frida", "Frida")
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op: %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 pet, got %d", len(repo.byID))
	}

	ok, err := svc.Exists(ctx, "FRIDA")
	if err != nil || !ok {
		t.Fatalf("expected frida to exist: %v", err)
	}
	ok, err = svc.Exists(ctx, "rocky")
	if err != nil || ok {
		t.Fatalf("expected rocky not to exist: %v", err)
	}
}

func TestDelete_RefusesDefaultPet(t *testing.T) {
	svc, repo := newTestService()
	svc.WithDefaultID(" Frida ")
	ctx := context.Background()

	for _, id := range []string{"frida", "rocky"} {
		if _, err := svc.Create(ctx, CreateInput{ID: id, Name: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	err := svc.Delete(ctx, "FRIDA")
	if !errors.Is(err, ErrDefaultPet) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected default pet to be refused, got %v", err)
	}
	if _, ok := repo.byID["frida"]; !ok {
		t.Fatalf("default pet was deleted")
	}

	if err := svc.Delete(ctx, " Rocky "); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.byID["rocky"]; ok {
		t.Fatalf("expected rocky to be deleted")
	}

	if err := svc.Delete(ctx, "rocky"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}
