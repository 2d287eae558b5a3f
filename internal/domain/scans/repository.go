package scans

import (
	"context"
	"time"
)

type Repository interface {
	// Record agrega el evento y actualiza last_seen de la mascota de forma atómica.
	// Devuelve ErrPetNotFound sin escribir nada si la mascota no existe.
	Record(ctx context.Context, e ScanEvent) (int64, error)

	// Recent devuelve los últimos eventos, más reciente primero.
	Recent(ctx context.Context, q RecentQuery) ([]ScanEvent, error)

	// CountSince cuenta eventos con Timestamp >= since.
	CountSince(ctx context.Context, petID string, since time.Time) (int, error)

	Count(ctx context.Context, f ListFilter) (int, error)
	Page(ctx context.Context, f ListFilter, offset, limit int) ([]ScanEvent, error)
}

type RecentQuery struct {
	PetID       string
	Limit       int
	LocatedOnly bool
}

// ListFilter filtra el historial.
// DateFrom / DateTo son "YYYY-MM-DD" y se comparan como texto contra la parte
// fecha del timestamp UTC guardado (ambos inclusive).
type ListFilter struct {
	PetID       string // vacío = todas
	DateFrom    string
	DateTo      string
	LocatedOnly bool

	Page     int
	PageSize int
}

// MatchesDate aplica la misma comparación de prefijo que usan los adapters SQL.
func (f ListFilter) MatchesDate(e ScanEvent) bool {
	key := e.DateKey()
	if f.DateFrom != "" && key < f.DateFrom {
		return false
	}
	if f.DateTo != "" && key > f.DateTo {
		return false
	}
	return true
}

// Matches aplica todos los filtros (usado por el adapter en memoria).
func (f ListFilter) Matches(e ScanEvent) bool {
	if f.PetID != "" && e.PetID != f.PetID {
		return false
	}
	if f.LocatedOnly && !e.HasLocation() {
		return false
	}
	return f.MatchesDate(e)
}
