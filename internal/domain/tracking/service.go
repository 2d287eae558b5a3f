// Package tracking es el motor: registra escaneos/ubicaciones, evalúa alertas
// y agenda las notificaciones. Los handlers HTTP y el CLI hablan solo con este paquete.
package tracking

import (
	"context"
	"errors"
	"strings"

	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/metrics"
	"pet-qr-tracker/internal/notify"
	"pet-qr-tracker/internal/platform/geo"
	"pet-qr-tracker/internal/platform/logger"
)

// ErrPetNotFound es el mismo sentinel que devuelve el store.
var ErrPetNotFound = scans.ErrPetNotFound

// Dispatcher es lo único que el motor necesita del envío: agendar y seguir.
type Dispatcher interface {
	Enqueue(m notify.Message) bool
}

// RequestMeta son los datos del cliente que se guardan con cada evento.
type RequestMeta struct {
	IP        string
	UserAgent string
	Referrer  string
}

// LocationInput llega tal cual del form. Coordenadas inválidas = evento sin ubicación.
type LocationInput struct {
	Lat      string
	Lon      string
	Accuracy string
}

func (in LocationInput) parse() *geo.Location {
	if strings.TrimSpace(in.Lat) == "" && strings.TrimSpace(in.Lon) == "" {
		return nil
	}
	loc, ok := geo.ParseLocation(in.Lat, in.Lon, in.Accuracy)
	if !ok {
		return nil
	}
	return &loc
}

type Deps struct {
	Pets       *pets.Service
	Scans      *scans.Service
	Contacts   *contacts.Service
	Evaluator  *alerts.Evaluator
	Dispatcher Dispatcher
	Messages   *notify.Builder
	Log        logger.Logger
}

type Service struct {
	pets     *pets.Service
	scans    *scans.Service
	contacts *contacts.Service
	eval     *alerts.Evaluator
	disp     Dispatcher
	msgs     *notify.Builder
	log      logger.Logger
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Messages == nil {
		d.Messages = notify.NewBuilder("")
	}
	if d.Evaluator == nil {
		d.Evaluator = alerts.NewEvaluator(alerts.DefaultConfig())
	}
	return &Service{
		pets:     d.Pets,
		scans:    d.Scans,
		contacts: d.Contacts,
		eval:     d.Evaluator,
		disp:     d.Dispatcher,
		msgs:     d.Messages,
		log:      d.Log.With(map[string]any{"component": "tracking"}),
	}
}

// recorded es lo que queda después de guardar un evento: el evento y el estado
// actualizado de la mascota (con last_seen ya pisado).
// Con petUnknown el evento quedó guardado pero no se pudo releer la mascota.
type recorded struct {
	event      scans.ScanEvent
	pet        pets.Pet
	contacts   []contacts.Contact
	petUnknown bool
}

func (s *Service) record(ctx context.Context, petID string, in scans.RecordInput) (recorded, error) {
	in.PetID = pets.NormalizeID(petID)

	ev, err := s.scans.Record(ctx, in)
	if err != nil {
		if !errors.Is(err, scans.ErrPetNotFound) {
			metrics.ScansFailed.Inc()
			s.log.Error("record scan failed", map[string]any{"pet_id": in.PetID, "kind": string(in.Kind), "error": err})
		}
		return recorded{}, err
	}
	metrics.ScansRecorded.WithLabelValues(string(ev.Kind)).Inc()

	pet, err := s.pets.Get(ctx, ev.PetID)
	if err != nil {
		// el evento ya está commiteado: se avisa con lo mínimo y no se evalúa
		s.log.Error("load pet after record failed", map[string]any{"pet_id": ev.PetID, "event_id": ev.ID, "error": err})
		return recorded{event: ev, pet: pets.Pet{ID: ev.PetID}, petUnknown: true}, nil
	}

	out := recorded{event: ev, pet: pet}
	if s.contacts != nil {
		cs, err := s.contacts.ListByPet(ctx, ev.PetID)
		if err != nil {
			s.log.Warn("list contacts failed", map[string]any{"pet_id": ev.PetID, "error": err})
		}
		out.contacts = cs
	}
	return out, nil
}

func (s *Service) dispatch(m notify.Message) {
	if s.disp == nil {
		return
	}
	if !s.disp.Enqueue(m) {
		s.log.Debug("notification not scheduled", map[string]any{"kind": string(m.Kind), "pet_id": m.PetID})
	}
}

// RecordScan guarda una visita a la página. Manda el aviso informativo; no evalúa alertas.
func (s *Service) RecordScan(ctx context.Context, petID string, meta RequestMeta) (scans.ScanEvent, error) {
	rec, err := s.record(ctx, petID, scans.RecordInput{
		Kind:      scans.KindPageView,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	})
	if err != nil {
		return rec.event, err
	}

	s.dispatch(s.msgs.BuildInfo(notify.KindScan, rec.pet, rec.contacts, rec.event))
	return rec.event, nil
}

// LocationResult devuelve el evento y las razones que dispararon (para logs/tests).
type LocationResult struct {
	Event   scans.ScanEvent
	Reasons []alerts.Reason
}

// RecordLocation guarda la ubicación compartida, manda el aviso informativo y
// después evalúa las reglas contra el estado ya actualizado. Si alguna regla
// dispara se agenda un único mensaje de alerta con todas las razones.
func (s *Service) RecordLocation(ctx context.Context, petID string, meta RequestMeta, in LocationInput) (LocationResult, error) {
	rec, err := s.record(ctx, petID, scans.RecordInput{
		Kind:      scans.KindLocation,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		Location:  in.parse(),
	})
	if err != nil {
		return LocationResult{Event: rec.event}, err
	}

	s.dispatch(s.msgs.BuildInfo(notify.KindLocation, rec.pet, rec.contacts, rec.event))
	if rec.petUnknown {
		// sin estado (lost/home, hogar) las reglas no se pueden evaluar
		return LocationResult{Event: rec.event}, nil
	}

	reasons := s.evaluate(ctx, rec)
	if len(reasons) > 0 {
		s.dispatch(s.msgs.BuildAlert(rec.pet, rec.contacts, reasons, rec.event))
	}
	return LocationResult{Event: rec.event, Reasons: reasons}, nil
}

func (s *Service) evaluate(ctx context.Context, rec recorded) []alerts.Reason {
	window := s.eval.Config().BurstWindow
	count, err := s.scans.CountSince(ctx, rec.event.PetID, rec.event.Timestamp.Add(-window))
	if err != nil {
		// sin conteo la regla de ráfaga no puede disparar; las otras sí
		s.log.Warn("burst count failed", map[string]any{"pet_id": rec.event.PetID, "error": err})
		count = 0
	}

	reasons := s.eval.Evaluate(rec.pet, rec.event, alerts.History{EventsInBurstWindow: count})
	for _, r := range reasons {
		metrics.AlertReasons.WithLabelValues(string(r.Kind)).Inc()
	}
	if len(reasons) > 0 {
		kinds := make([]string, 0, len(reasons))
		for _, r := range reasons {
			kinds = append(kinds, string(r.Kind))
		}
		s.log.Info("alert fired", map[string]any{
			"pet_id":   rec.event.PetID,
			"event_id": rec.event.ID,
			"reasons":  kinds,
		})
	}
	return reasons
}

// ReportSighting guarda un avistaje con nota (y ubicación si vino). Solo aviso informativo.
func (s *Service) ReportSighting(ctx context.Context, petID string, meta RequestMeta, note string, in LocationInput) (scans.ScanEvent, error) {
	rec, err := s.record(ctx, petID, scans.RecordInput{
		Kind:      scans.KindSighting,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		Note:      truncate(strings.TrimSpace(note), maxNoteLen),
		Location:  in.parse(),
	})
	if err != nil {
		return rec.event, err
	}

	s.dispatch(s.msgs.BuildInfo(notify.KindSighting, rec.pet, rec.contacts, rec.event))
	return rec.event, nil
}

const maxNoteLen = 1000

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// QueryLocations devuelve los últimos puntos con coordenadas, más reciente primero.
func (s *Service) QueryLocations(ctx context.Context, petID string, limit int) ([]scans.ScanEvent, error) {
	id, err := s.requirePet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return s.scans.Recent(ctx, id, limit, true)
}

// QueryHistory pagina el historial (todas las mascotas si PetID está vacío).
func (s *Service) QueryHistory(ctx context.Context, f scans.ListFilter) (scans.Page, error) {
	return s.scans.List(ctx, f)
}

// Stats resume la actividad de una mascota.
func (s *Service) Stats(ctx context.Context, petID string) (scans.Stats, error) {
	id, err := s.requirePet(ctx, petID)
	if err != nil {
		return scans.Stats{}, err
	}
	return s.scans.Stats(ctx, id)
}

// Profile es lo que muestra la página pública.
type Profile struct {
	Pet      pets.Pet
	Contacts []contacts.Contact
	Event    scans.ScanEvent
}

// PublicProfile registra la visita y devuelve los datos de la página.
// Si la mascota no existe no se escribe nada.
func (s *Service) PublicProfile(ctx context.Context, petID string, meta RequestMeta) (Profile, error) {
	rec, err := s.record(ctx, petID, scans.RecordInput{
		Kind:      scans.KindPageView,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	})
	if err != nil {
		return Profile{}, err
	}

	s.dispatch(s.msgs.BuildInfo(notify.KindScan, rec.pet, rec.contacts, rec.event))
	return Profile{Pet: rec.pet, Contacts: rec.contacts, Event: rec.event}, nil
}

func (s *Service) requirePet(ctx context.Context, petID string) (string, error) {
	p, err := s.pets.Get(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return "", ErrPetNotFound
		}
		return "", err
	}
	return p.ID, nil
}
