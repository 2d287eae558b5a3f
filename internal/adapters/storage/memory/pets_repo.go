package memory

import (
	"context"
	"sort"
	"strings"

	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/platform/geo"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return pets.ErrInvalidInput
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return pets.ErrAlreadyExists
	}
	r.s.pets[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		out = append(out, clonePet(p))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *petRepo) UpdateProfile(ctx context.Context, id string, prof pets.Profile) error {
	return r.update(id, func(p *pets.Pet) { p.Profile = prof })
}

func (r *petRepo) SetStatus(ctx context.Context, id string, st pets.Status) error {
	return r.update(id, func(p *pets.Pet) { p.Status = st })
}

func (r *petRepo) SetHome(ctx context.Context, id string, home *geo.Point) error {
	return r.update(id, func(p *pets.Pet) {
		if home == nil {
			p.Home = nil
			return
		}
		h := *home
		p.Home = &h
	})
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)

	keptScans := r.s.scans[:0]
	for _, e := range r.s.scans {
		if e.PetID != id {
			keptScans = append(keptScans, e)
		}
	}
	r.s.scans = keptScans

	keptContacts := r.s.contacts[:0]
	for _, c := range r.s.contacts {
		if c.PetID != id {
			keptContacts = append(keptContacts, c)
		}
	}
	r.s.contacts = keptContacts
	return nil
}

func (r *petRepo) update(id string, fn func(p *pets.Pet)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.ErrNotFound
	}
	fn(&p)
	r.s.pets[id] = p
	return nil
}

// clonePet copia los punteros para que el caller no pueda mutar el store.
func clonePet(p pets.Pet) pets.Pet {
	if p.Home != nil {
		h := *p.Home
		p.Home = &h
	}
	if p.LastSeen != nil {
		ls := *p.LastSeen
		ls.Location = cloneLocation(ls.Location)
		p.LastSeen = &ls
	}
	return p
}

func cloneLocation(l *geo.Location) *geo.Location {
	if l == nil {
		return nil
	}
	c := *l
	if l.Accuracy != nil {
		a := *l.Accuracy
		c.Accuracy = &a
	}
	return &c
}
