package scans

import (
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

// Kind distingue de dónde salió el evento.
type Kind string

const (
	KindPageView Kind = "page_view"
	KindLocation Kind = "location"
	KindSighting Kind = "sighting"
)

const (
	// TimestampLayout es el formato persistido (texto) de ts_utc.
	TimestampLayout = "2006-01-02 15:04:05 UTC"
	// DateLayout es el prefijo de TimestampLayout que usan los filtros por fecha.
	DateLayout = "2006-01-02"
)

// ScanEvent es un escaneo / reporte de ubicación. Inmutable una vez guardado.
// El orden real es ID (secuencia de inserción); Timestamp lo genera el server.
type ScanEvent struct {
	ID    int64
	PetID string
	Kind  Kind

	Timestamp time.Time

	IP        string
	UserAgent string
	Referrer  string
	Note      string

	Location *geo.Location
}

// DateKey es la parte fecha (UTC) del timestamp persistido.
func (e ScanEvent) DateKey() string {
	return e.Timestamp.UTC().Format(DateLayout)
}

// HasLocation indica si el evento trajo coordenadas.
func (e ScanEvent) HasLocation() bool {
	return e.Location != nil
}

// Page es una página del historial.
type Page struct {
	Total    int
	Page     int
	PageSize int
	Pages    int
	Rows     []ScanEvent
}

// Stats resume la actividad de una mascota (dashboard).
type Stats struct {
	Total   int
	Located int
	Last    *ScanEvent
}
