package alerts

import (
	"fmt"
	"time"

	"pet-qr-tracker/internal/platform/geo"
)

type Kind string

const (
	KindNight    Kind = "night"
	KindBurst    Kind = "burst"
	KindDistance Kind = "distance"
)

// Reason explica por qué saltó una alerta y trae la evidencia para el mensaje.
// Solo los campos del Kind correspondiente vienen cargados.
type Reason struct {
	Kind Kind

	// night
	LocalTime  time.Time
	NightStart int
	NightEnd   int

	// burst
	Count     int
	Window    time.Duration
	Threshold int

	// distance (valores con precisión completa; se redondea solo al mostrar)
	DistanceKm  float64
	ThresholdKm float64
}

// Describe arma el texto para humanos.
func (r Reason) Describe() string {
	switch r.Kind {
	case KindNight:
		return fmt.Sprintf("Escaneo nocturno: %s hora local (ventana %02d:00-%02d:00)",
			r.LocalTime.Format("15:04"), r.NightStart, r.NightEnd)
	case KindBurst:
		return fmt.Sprintf("Muchos escaneos seguidos: %d en los últimos %s (umbral %d)",
			r.Count, formatWindow(r.Window), r.Threshold)
	case KindDistance:
		return fmt.Sprintf("Lejos de casa: %.2f km (umbral %.2f km)",
			geo.Round2(r.DistanceKm), geo.Round2(r.ThresholdKm))
	default:
		return string(r.Kind)
	}
}

func formatWindow(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return d.String()
}
