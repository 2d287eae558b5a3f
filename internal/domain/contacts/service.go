package contacts

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const DefaultLabel = "Contacto"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	PetID    string
	Label    string
	Name     string
	Phone    string
	WhatsApp string
	Priority int
}

// Add no valida que la mascota exista; eso lo hace el handler/CLI antes.
func (s *Service) Add(ctx context.Context, in AddInput) (Contact, error) {
	petID := strings.ToLower(strings.TrimSpace(in.PetID))
	name := strings.TrimSpace(in.Name)
	if petID == "" || name == "" {
		return Contact{}, ErrInvalidInput
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		label = DefaultLabel
	}
	prio := in.Priority
	if prio <= 0 {
		prio = 1
	}

	c := Contact{
		PetID:    petID,
		Label:    label,
		Name:     name,
		Phone:    strings.TrimSpace(in.Phone),
		WhatsApp: strings.TrimSpace(in.WhatsApp),
		Priority: prio,
	}

	id, err := s.repo.Add(ctx, c)
	if err != nil {
		return Contact{}, err
	}
	c.ID = id
	return c, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Contact, error) {
	petID = strings.ToLower(strings.TrimSpace(petID))
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}
