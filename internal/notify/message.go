package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/platform/geo"
)

// Kind identifica el tipo de aviso.
type Kind string

const (
	KindAlert    Kind = "alert"
	KindScan     Kind = "scan"
	KindLocation Kind = "location_shared"
	KindSighting Kind = "sighting"
)

// Message es lo que recibe el sink. Un evento genera a lo sumo un mensaje por Kind.
type Message struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	PetID     string        `json:"pet_id"`
	PetName   string        `json:"pet_name"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Reasons   []string      `json:"reasons,omitempty"`
	EventID   int64         `json:"event_id"`
	IP        string        `json:"ip,omitempty"`
	Location  *geo.Location `json:"location,omitempty"`
	MapURL    string        `json:"map_url,omitempty"`
	PageURL   string        `json:"page_url,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Builder arma los textos. BaseURL se usa para el link a la página de la mascota.
type Builder struct {
	BaseURL string
	Now     func() time.Time
}

func NewBuilder(baseURL string) *Builder {
	return &Builder{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Now:     time.Now,
	}
}

// BuildAlert junta todas las razones en un solo mensaje.
func (b *Builder) BuildAlert(pet pets.Pet, cs []contacts.Contact, reasons []alerts.Reason, ev scans.ScanEvent) Message {
	m := b.base(KindAlert, pet, ev)
	m.Title = fmt.Sprintf("⚠️ Alerta: %s", displayName(pet))

	lines := make([]string, 0, len(reasons)+4)
	m.Reasons = make([]string, 0, len(reasons))
	for _, r := range reasons {
		d := r.Describe()
		m.Reasons = append(m.Reasons, d)
		lines = append(lines, "• "+d)
	}
	m.Text = b.compose(m, lines, cs)
	return m
}

// BuildInfo arma los avisos informativos (escaneo, ubicación compartida, avistaje).
// No dependen del estado de la mascota ni del evaluador.
func (b *Builder) BuildInfo(kind Kind, pet pets.Pet, cs []contacts.Contact, ev scans.ScanEvent) Message {
	m := b.base(kind, pet, ev)
	name := displayName(pet)

	var lines []string
	switch kind {
	case KindLocation:
		m.Title = fmt.Sprintf("📍 Ubicación compartida: %s", name)
		if ev.Location == nil {
			lines = append(lines, "Intentaron compartir la ubicación pero no llegaron coordenadas válidas.")
		}
	case KindSighting:
		m.Title = fmt.Sprintf("👀 Avistaje reportado: %s", name)
		if ev.Note != "" {
			lines = append(lines, "Nota: "+ev.Note)
		}
	default:
		m.Kind = KindScan
		m.Title = fmt.Sprintf("🔎 Escanearon la chapita de %s", name)
	}

	m.Text = b.compose(m, lines, cs)
	return m
}

func (b *Builder) base(kind Kind, pet pets.Pet, ev scans.ScanEvent) Message {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	m := Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		PetID:     pet.ID,
		PetName:   pet.Name,
		EventID:   ev.ID,
		IP:        ev.IP,
		Location:  ev.Location,
		CreatedAt: now().UTC(),
	}
	if ev.Location != nil {
		m.MapURL = MapURL(ev.Location.Point)
	}
	if b.BaseURL != "" {
		m.PageURL = b.BaseURL + "/p/" + pet.ID
	}
	return m
}

func (b *Builder) compose(m Message, lines []string, cs []contacts.Contact) string {
	var sb strings.Builder
	sb.WriteString(m.Title)
	for _, l := range lines {
		sb.WriteString("\n")
		sb.WriteString(l)
	}
	if m.Location != nil {
		sb.WriteString(fmt.Sprintf("\nUbicación: %.6f, %.6f", m.Location.Lat, m.Location.Lon))
		if m.Location.Accuracy != nil {
			sb.WriteString(fmt.Sprintf(" (±%.0f m)", *m.Location.Accuracy))
		}
		sb.WriteString("\n" + m.MapURL)
	}
	if m.IP != "" {
		sb.WriteString("\nIP: " + m.IP)
	}
	if m.PageURL != "" {
		sb.WriteString("\n" + m.PageURL)
	}
	if len(cs) > 0 {
		sb.WriteString("\nContactos:")
		for _, c := range cs {
			sb.WriteString(fmt.Sprintf("\n- %s: %s %s", c.Label, c.Name, c.Phone))
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// MapURL es un link a Google Maps para el punto.
func MapURL(p geo.Point) string {
	return fmt.Sprintf("https://maps.google.com/?q=%.6f,%.6f", p.Lat, p.Lon)
}

func displayName(p pets.Pet) string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.ID
}
