package memory

import (
	"context"
	"sort"

	"pet-qr-tracker/internal/domain/contacts"
)

type contactRepo struct {
	s *Store
}

func (r *contactRepo) Add(ctx context.Context, c contacts.Contact) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextContactID++
	c.ID = r.s.nextContactID
	r.s.contacts = append(r.s.contacts, c)
	return c.ID, nil
}

func (r *contactRepo) ListByPet(ctx context.Context, petID string) ([]contacts.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]contacts.Contact, 0)
	for _, c := range r.s.contacts {
		if c.PetID == petID {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
