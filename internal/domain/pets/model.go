package pets

import (
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

// Status es el estado que controla el dueño. El motor de alertas solo lo lee.
// @Enum lost, home
type Status string

const (
	StatusLost Status = "lost"
	StatusHome Status = "home"
)

func (s Status) Valid() bool {
	return s == StatusLost || s == StatusHome
}

// DefaultPhoto es la foto que se asigna a mascotas nuevas.
const DefaultPhoto = "/static/pet.jpg"

// Profile agrupa los datos de la chapita (no influyen en las alertas).
type Profile struct {
	Name         string
	Photo        string
	Breed        string
	Sex          string
	Age          string
	Size         string
	Color        string
	Chip         string
	Vaccinated   string
	Neutered     string
	Allergies    string
	Medication   string
	Temperament  string
	SpecialMarks string
	Reward       string
	Notes        string
}

// LastSeen es el cache de la última vez que se escaneó la chapita.
// Location solo cambia cuando el evento trajo coordenadas.
type LastSeen struct {
	At       time.Time
	Location *geo.Location
}

// Pet representa una mascota identificada por slug (ej: "frida").
type Pet struct {
	ID string

	Profile

	Status Status
	Home   *geo.Point

	LastSeen *LastSeen

	CreatedAt time.Time
}

// UsableHome devuelve el hogar solo si está cargado y ninguna coordenada es 0.
// Una coordenada en 0 se interpreta como "sin hogar".
func (p Pet) UsableHome() (geo.Point, bool) {
	if p.Home == nil || p.Home.IsZero() {
		return geo.Point{}, false
	}
	return *p.Home, true
}
