package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("pet not found")
	ErrAlreadyExists = errors.New("pet already exists")

	// ErrDefaultPet envuelve ErrInvalidInput.
	ErrDefaultPet = fmt.Errorf("%w: the default pet cannot be deleted", ErrInvalidInput)
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789-_"

// NormalizeID aplica trim + minúsculas. /p/Frida y /p/frida son la misma mascota.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ValidID valida un slug ya normalizado (a-z 0-9 - _).
func ValidID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		if !strings.ContainsRune(idCharset, r) {
			return false
		}
	}
	return true
}

type Service struct {
	repo Repository
	now  func() time.Time

	defaultID string // no se puede borrar
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithDefaultID marca la mascota default (la de "/"), que Delete rechaza.
func (s *Service) WithDefaultID(id string) *Service {
	s.defaultID = NormalizeID(id)
	return s
}

type CreateInput struct {
	ID     string
	Name   string
	Photo  string
	Status Status // opcional, default lost
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	id := NormalizeID(in.ID)
	if !ValidID(id) {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusLost
	}
	if !status.Valid() {
		return Pet{}, ErrInvalidInput
	}

	photo := strings.TrimSpace(in.Photo)
	if photo == "" {
		photo = DefaultPhoto
	}

	p := Pet{
		ID:        id,
		Profile:   Profile{Name: name, Photo: photo},
		Status:    status,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Get busca por id (se normaliza antes).
func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	id = NormalizeID(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// ProfileInput usa punteros para PATCH real: nil = no tocar.
type ProfileInput struct {
	Name         *string
	Photo        *string
	Breed        *string
	Sex          *string
	Age          *string
	Size         *string
	Color        *string
	Chip         *string
	Vaccinated   *string
	Neutered     *string
	Allergies    *string
	Medication   *string
	Temperament  *string
	SpecialMarks *string
	Reward       *string
	Notes        *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (Pet, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p := current.Profile
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	apply(&p.Name, in.Name)
	apply(&p.Photo, in.Photo)
	apply(&p.Breed, in.Breed)
	apply(&p.Sex, in.Sex)
	apply(&p.Age, in.Age)
	apply(&p.Size, in.Size)
	apply(&p.Color, in.Color)
	apply(&p.Chip, in.Chip)
	apply(&p.Vaccinated, in.Vaccinated)
	apply(&p.Neutered, in.Neutered)
	apply(&p.Allergies, in.Allergies)
	apply(&p.Medication, in.Medication)
	apply(&p.Temperament, in.Temperament)
	apply(&p.SpecialMarks, in.SpecialMarks)
	apply(&p.Reward, in.Reward)
	apply(&p.Notes, in.Notes)

	if p.Name == "" {
		return Pet{}, ErrInvalidInput
	}
	if p.Photo == "" {
		p.Photo = DefaultPhoto
	}

	if err := s.repo.UpdateProfile(ctx, current.ID, p); err != nil {
		return Pet{}, err
	}
	current.Profile = p
	return current, nil
}

// SetStatus es la única forma de cambiar lost/home (acción del dueño).
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Pet, error) {
	if !status.Valid() {
		return Pet{}, ErrInvalidInput
	}
	id = NormalizeID(id)
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) SetHomeLocation(ctx context.Context, id string, lat, lon float64) (Pet, error) {
	home := geo.Point{Lat: lat, Lon: lon}
	if !home.Valid() {
		return Pet{}, ErrInvalidInput
	}
	id = NormalizeID(id)
	if err := s.repo.SetHome(ctx, id, &home); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ClearHomeLocation(ctx context.Context, id string) (Pet, error) {
	id = NormalizeID(id)
	if err := s.repo.SetHome(ctx, id, nil); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete borra la mascota con todo su historial y sus contactos.
// La mascota default no se puede borrar (ErrDefaultPet).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = NormalizeID(id)
	if id == "" {
		return ErrNotFound
	}
	if s.defaultID != "" && id == s.defaultID {
		return ErrDefaultPet
	}
	return s.repo.Delete(ctx, id)
}

// EnsureDefault crea la mascota default si la base está vacía.
// Devuelve true si la creó.
func (s *Service) EnsureDefault(ctx context.Context, id, name string) (bool, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(items) > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, CreateInput{ID: id, Name: name}); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Exists es un atajo para handlers que solo necesitan saber si la mascota existe.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
