package scans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPetNotFound  = errors.New("pet not found")
	ErrStorage      = errors.New("storage error")
)

const (
	DefaultRecentLimit = 25
	MaxRecentLimit     = 200

	DefaultPageSize = 25
	MinPageSize     = 5
	MaxPageSize     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithClock(repo, time.Now)
}

// NewServiceWithClock permite fijar el reloj (tests, CLI de import).
func NewServiceWithClock(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

// RecordInput son los datos del request; el timestamp lo pone el server.
type RecordInput struct {
	PetID     string
	Kind      Kind
	IP        string
	UserAgent string
	Referrer  string
	Note      string
	Location  *geo.Location
}

// Record guarda el evento. No reintenta: si falla el storage el error sube.
func (s *Service) Record(ctx context.Context, in RecordInput) (ScanEvent, error) {
	petID := strings.ToLower(strings.TrimSpace(in.PetID))
	if petID == "" {
		return ScanEvent{}, ErrPetNotFound
	}

	kind := in.Kind
	if kind == "" {
		kind = KindPageView
	}

	e := ScanEvent{
		PetID:     petID,
		Kind:      kind,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
		IP:        strings.TrimSpace(in.IP),
		UserAgent: in.UserAgent,
		Referrer:  in.Referrer,
		Note:      strings.TrimSpace(in.Note),
		Location:  in.Location,
	}

	id, err := s.repo.Record(ctx, e)
	if err != nil {
		if errors.Is(err, ErrPetNotFound) || errors.Is(err, ErrStorage) {
			return ScanEvent{}, err
		}
		return ScanEvent{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	e.ID = id
	return e, nil
}

// Recent devuelve los últimos eventos, más reciente primero.
// limit <= 0 usa el default (25); el máximo es 200.
func (s *Service) Recent(ctx context.Context, petID string, limit int, locatedOnly bool) ([]ScanEvent, error) {
	return s.repo.Recent(ctx, RecentQuery{
		PetID:       strings.ToLower(strings.TrimSpace(petID)),
		Limit:       ClampLimit(limit),
		LocatedOnly: locatedOnly,
	})
}

func (s *Service) CountSince(ctx context.Context, petID string, since time.Time) (int, error) {
	return s.repo.CountSince(ctx, strings.ToLower(strings.TrimSpace(petID)), since)
}

// List pagina el historial. El total se calcula primero y después se acota la página,
// así pedir page=5 con 3 páginas devuelve la 3.
// No hay aislamiento entre el count y el select: con inserts concurrentes puede
// faltar o repetirse una fila en el borde.
func (s *Service) List(ctx context.Context, f ListFilter) (Page, error) {
	f.PetID = strings.ToLower(strings.TrimSpace(f.PetID))
	f.DateFrom = strings.TrimSpace(f.DateFrom)
	f.DateTo = strings.TrimSpace(f.DateTo)
	if !validDate(f.DateFrom) || !validDate(f.DateTo) {
		return Page{}, ErrInvalidInput
	}

	size := ClampPageSize(f.PageSize)

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return Page{}, err
	}

	page, pages := ClampPage(f.Page, total, size)
	f.Page, f.PageSize = page, size

	rows, err := s.repo.Page(ctx, f, (page-1)*size, size)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Total:    total,
		Page:     page,
		PageSize: size,
		Pages:    pages,
		Rows:     rows,
	}, nil
}

// Stats arma el resumen del dashboard: total, con ubicación y último evento.
func (s *Service) Stats(ctx context.Context, petID string) (Stats, error) {
	petID = strings.ToLower(strings.TrimSpace(petID))

	total, err := s.repo.Count(ctx, ListFilter{PetID: petID})
	if err != nil {
		return Stats{}, err
	}
	located, err := s.repo.Count(ctx, ListFilter{PetID: petID, LocatedOnly: true})
	if err != nil {
		return Stats{}, err
	}

	out := Stats{Total: total, Located: located}

	last, err := s.repo.Recent(ctx, RecentQuery{PetID: petID, Limit: 1})
	if err != nil {
		return Stats{}, err
	}
	if len(last) > 0 {
		e := last[0]
		out.Last = &e
	}
	return out, nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size < MinPageSize {
		return MinPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// ClampPage devuelve (page, pages) con page en [1, pages] y pages >= 1.
func ClampPage(page, total, size int) (int, int) {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page, pages
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
