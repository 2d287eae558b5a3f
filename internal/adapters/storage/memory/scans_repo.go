package memory

import (
	"context"
	"time"

	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
)

type scanRepo struct {
	s *Store
}

func (r *scanRepo) Record(ctx context.Context, e scans.ScanEvent) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[e.PetID]
	if !ok {
		return 0, scans.ErrPetNotFound
	}

	r.s.nextScanID++
	e.ID = r.s.nextScanID
	e.Location = cloneLocation(e.Location)
	r.s.scans = append(r.s.scans, e)

	// last_seen: el timestamp siempre, la ubicación solo si vino
	ls := pets.LastSeen{At: e.Timestamp}
	if p.LastSeen != nil {
		ls.Location = p.LastSeen.Location
	}
	if e.Location != nil {
		ls.Location = cloneLocation(e.Location)
	}
	p.LastSeen = &ls
	r.s.pets[e.PetID] = p

	return e.ID, nil
}

func (r *scanRepo) Recent(ctx context.Context, q scans.RecentQuery) ([]scans.ScanEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]scans.ScanEvent, 0)
	for i := len(r.s.scans) - 1; i >= 0 && len(out) < q.Limit; i-- {
		e := r.s.scans[i]
		if e.PetID != q.PetID {
			continue
		}
		if q.LocatedOnly && !e.HasLocation() {
			continue
		}
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (r *scanRepo) CountSince(ctx context.Context, petID string, since time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, e := range r.s.scans {
		if e.PetID == petID && !e.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *scanRepo) Count(ctx context.Context, f scans.ListFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, e := range r.s.scans {
		if f.Matches(e) {
			n++
		}
	}
	return n, nil
}

// Page recorre de más nuevo a más viejo (id desc) salteando offset.
func (r *scanRepo) Page(ctx context.Context, f scans.ListFilter, offset, limit int) ([]scans.ScanEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]scans.ScanEvent, 0, limit)
	skipped := 0
	for i := len(r.s.scans) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.scans[i]
		if !f.Matches(e) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func cloneEvent(e scans.ScanEvent) scans.ScanEvent {
	e.Location = cloneLocation(e.Location)
	return e
}
