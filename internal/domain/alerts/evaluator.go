package alerts

import (
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/platform/geo"
)

// History es lo que el evaluador necesita del pasado de la mascota.
type History struct {
	// EventsInBurstWindow cuenta los eventos en la ventana de ráfaga,
	// incluyendo el que se está evaluando.
	EventsInBurstWindow int
}

// Evaluator es una función pura sobre (mascota, evento, historial).
type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate devuelve la unión de las reglas que dispararon (orden fijo:
// night, burst, distance). Una mascota en casa nunca genera alertas.
func (e *Evaluator) Evaluate(pet pets.Pet, ev scans.ScanEvent, h History) []Reason {
	if pet.Status != pets.StatusLost {
		return nil
	}

	var out []Reason
	if r, ok := e.night(ev); ok {
		out = append(out, r)
	}
	if r, ok := e.burst(h); ok {
		out = append(out, r)
	}
	if r, ok := e.distance(pet, ev); ok {
		out = append(out, r)
	}
	return out
}

func (e *Evaluator) night(ev scans.ScanEvent) (Reason, bool) {
	loc := e.cfg.Location
	if loc == nil {
		return Reason{}, false
	}
	local := ev.Timestamp.In(loc)
	if !e.cfg.IsNight(local.Hour()) {
		return Reason{}, false
	}
	return Reason{
		Kind:       KindNight,
		LocalTime:  local,
		NightStart: e.cfg.NightStartHour,
		NightEnd:   e.cfg.NightEndHour,
	}, true
}

func (e *Evaluator) burst(h History) (Reason, bool) {
	if e.cfg.BurstThreshold < 1 || h.EventsInBurstWindow < e.cfg.BurstThreshold {
		return Reason{}, false
	}
	return Reason{
		Kind:      KindBurst,
		Count:     h.EventsInBurstWindow,
		Window:    e.cfg.BurstWindow,
		Threshold: e.cfg.BurstThreshold,
	}, true
}

func (e *Evaluator) distance(pet pets.Pet, ev scans.ScanEvent) (Reason, bool) {
	if ev.Location == nil {
		return Reason{}, false
	}
	home, ok := pet.UsableHome()
	if !ok {
		return Reason{}, false
	}

	d := geo.DistanceKm(home, ev.Location.Point)
	if d < e.cfg.DistanceThresholdKm {
		return Reason{}, false
	}
	return Reason{
		Kind:        KindDistance,
		DistanceKm:  d,
		ThresholdKm: e.cfg.DistanceThresholdKm,
	}, true
}
