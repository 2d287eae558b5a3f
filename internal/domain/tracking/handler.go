package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PublicOptions configura las rutas que ve quien escanea la chapita.
type PublicOptions struct {
	DefaultPetID string
	// Aliases redirige slugs viejos a la mascota actual (301).
	Aliases map[string]string
	// WriteLimiter va delante de los POST públicos. nil = sin límite.
	WriteLimiter func(http.Handler) http.Handler
}

func RegisterPublicRoutes(r chi.Router, svc *Service, opts PublicOptions) {
	defaultID := pets.NormalizeID(opts.DefaultPetID)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/p/"+url.PathEscape(defaultID), http.StatusFound)
	})
	r.Get("/p/{petID}", petPageHandler(svc, opts.Aliases))
	r.Get("/api/locations/{petID}", locationsHandler(svc))

	r.Group(func(wr chi.Router) {
		if opts.WriteLimiter != nil {
			wr.Use(opts.WriteLimiter)
		}
		wr.Post("/api/location/{petID}", shareLocationHandler(svc))
		wr.Post("/api/sighting/{petID}", sightingHandler(svc))
	})
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/history", historyHandler(svc))
	r.Get("/pets/{petID}/stats", statsHandler(svc))
}

type okResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PublicPetResponse es lo que ve cualquiera: sin el hogar.
type PublicPetResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Photo        string      `json:"photo"`
	Status       pets.Status `json:"status"`
	Breed        string      `json:"breed"`
	Sex          string      `json:"sex"`
	Age          string      `json:"age"`
	Size         string      `json:"size"`
	Color        string      `json:"color"`
	Chip         string      `json:"chip"`
	Vaccinated   string      `json:"vaccinated"`
	Neutered     string      `json:"neutered"`
	Allergies    string      `json:"allergies"`
	Medication   string      `json:"medication"`
	Temperament  string      `json:"temperament"`
	SpecialMarks string      `json:"special_marks"`
	Reward       string      `json:"reward"`
	Notes        string      `json:"notes"`
}

type PointResponse struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Accuracy *float64 `json:"accuracy"`
	TsUTC    string   `json:"ts_utc"`
}

type PetPageResponse struct {
	OK           bool                       `json:"ok"`
	Pet          PublicPetResponse          `json:"pet"`
	Contacts     []contacts.ContactResponse `json:"contacts"`
	LastLocation *PointResponse             `json:"last_location"`
}

type LocationsResponse struct {
	OK     bool            `json:"ok"`
	Points []PointResponse `json:"points"`
}

type EventResponse struct {
	ID        int64          `json:"id"`
	PetID     string         `json:"pet_id"`
	Kind      scans.Kind     `json:"kind"`
	TsUTC     string         `json:"ts_utc"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	Referrer  string         `json:"referrer"`
	Note      string         `json:"note,omitempty"`
	Location  *PointResponse `json:"location,omitempty"`
}

type HistoryResponse struct {
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Pages    int             `json:"pages"`
	Rows     []EventResponse `json:"rows"`
}

type StatsResponse struct {
	PetID   string         `json:"pet_id"`
	Total   int            `json:"total"`
	Located int            `json:"located"`
	Last    *EventResponse `json:"last,omitempty"`
}

// petPageHandler godoc
// @Summary Página pública de la mascota
// @Description Registra la visita y devuelve perfil, contactos y última ubicación conocida.
// @Tags public
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Success 200 {object} PetPageResponse
// @Success 301 {string} string "redirect al slug en minúsculas o al alias"
// @Failure 404 {object} okResponse
// @Router /p/{petID} [get]
func petPageHandler(svc *Service, aliases map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "petID"))
		id := pets.NormalizeID(raw)

		if target, ok := aliases[id]; ok && target != "" && target != id {
			http.Redirect(w, r, "/p/"+url.PathEscape(target), http.StatusMovedPermanently)
			return
		}
		if raw != id {
			http.Redirect(w, r, "/p/"+url.PathEscape(id), http.StatusMovedPermanently)
			return
		}

		prof, err := svc.PublicProfile(r.Context(), id, requestMeta(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := PetPageResponse{
			OK:       true,
			Pet:      toPublicPet(prof.Pet),
			Contacts: make([]contacts.ContactResponse, 0, len(prof.Contacts)),
		}
		for _, c := range prof.Contacts {
			out.Contacts = append(out.Contacts, contacts.ToContactResponse(c))
		}
		if ls := prof.Pet.LastSeen; ls != nil && ls.Location != nil {
			out.LastLocation = &PointResponse{
				Lat:      ls.Location.Lat,
				Lon:      ls.Location.Lon,
				Accuracy: ls.Location.Accuracy,
				TsUTC:    ls.At.UTC().Format(scans.TimestampLayout),
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// shareLocationHandler godoc
// @Summary Compartir ubicación
// @Description Guarda la ubicación que mandó el navegador y evalúa las alertas. Acepta form o JSON.
// @Tags public
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param lat formData number true "latitud"
// @Param lon formData number true "longitud"
// @Param accuracy formData number false "precisión en metros"
// @Success 200 {object} okResponse
// @Failure 400 {object} okResponse
// @Failure 404 {object} okResponse
// @Failure 429 {object} okResponse
// @Router /api/location/{petID} [post]
func shareLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := readFields(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, okResponse{OK: false, Error: "invalid_body"})
			return
		}

		_, err = svc.RecordLocation(r.Context(), chi.URLParam(r, "petID"), requestMeta(r), LocationInput{
			Lat:      fields["lat"],
			Lon:      fields["lon"],
			Accuracy: fields["accuracy"],
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

// sightingHandler godoc
// @Summary Reportar avistaje
// @Description Guarda una nota de quien vio a la mascota (máx. 1000 caracteres), con ubicación opcional. Solo aviso informativo, no evalúa alertas.
// @Tags public
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param note formData string false "qué vio y dónde"
// @Param lat formData number false "latitud"
// @Param lon formData number false "longitud"
// @Param accuracy formData number false "precisión en metros"
// @Success 200 {object} okResponse
// @Failure 400 {object} okResponse
// @Failure 404 {object} okResponse
// @Failure 429 {object} okResponse
// @Router /api/sighting/{petID} [post]
func sightingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := readFields(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, okResponse{OK: false, Error: "invalid_body"})
			return
		}

		_, err = svc.ReportSighting(r.Context(), chi.URLParam(r, "petID"), requestMeta(r), fields["note"], LocationInput{
			Lat:      fields["lat"],
			Lon:      fields["lon"],
			Accuracy: fields["accuracy"],
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

// locationsHandler godoc
// @Summary Últimas ubicaciones
// @Tags public
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param limit query int false "cantidad (1..200, default 25)"
// @Success 200 {object} LocationsResponse
// @Failure 400 {object} okResponse
// @Failure 404 {object} okResponse
// @Router /api/locations/{petID} [get]
func locationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := scans.DefaultRecentLimit
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, okResponse{OK: false, Error: "invalid_limit"})
				return
			}
			// un limit explícito <= 0 es 1, no el default
			limit = max(1, n)
		}

		evs, err := svc.QueryLocations(r.Context(), chi.URLParam(r, "petID"), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := LocationsResponse{OK: true, Points: make([]PointResponse, 0, len(evs))}
		for _, e := range evs {
			if p := toPoint(e); p != nil {
				out.Points = append(out.Points, *p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// historyHandler godoc
// @Summary Historial de escaneos
// @Description Paginado, más reciente primero. Fechas YYYY-MM-DD (UTC), ambos extremos incluidos.
// @Tags admin
// @Produce json
// @Param pet query string false "slug; vacío = todas"
// @Param date_from query string false "desde (YYYY-MM-DD)"
// @Param date_to query string false "hasta (YYYY-MM-DD)"
// @Param located query bool false "solo eventos con ubicación"
// @Param page query int false "página (1..)"
// @Param page_size query int false "tamaño (5..200, default 25)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /admin/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page, err := optionalInt(q.Get("page"))
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		size, err := optionalInt(q.Get("page_size"))
		if err != nil {
			http.Error(w, "invalid page_size", http.StatusBadRequest)
			return
		}
		located, _ := strconv.ParseBool(q.Get("located"))

		res, err := svc.QueryHistory(r.Context(), scans.ListFilter{
			PetID:       q.Get("pet"),
			DateFrom:    q.Get("date_from"),
			DateTo:      q.Get("date_to"),
			LocatedOnly: located,
			Page:        page,
			PageSize:    size,
		})
		if err != nil {
			if errors.Is(err, scans.ErrInvalidInput) {
				http.Error(w, "invalid date (want YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := HistoryResponse{
			Total:    res.Total,
			Page:     res.Page,
			PageSize: res.PageSize,
			Pages:    res.Pages,
			Rows:     make([]EventResponse, 0, len(res.Rows)),
		}
		for _, e := range res.Rows {
			out.Rows = append(out.Rows, ToEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// statsHandler godoc
// @Summary Resumen de actividad
// @Description Total de eventos, cuántos trajeron ubicación y el último.
// @Tags admin
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Success 200 {object} StatsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := pets.NormalizeID(chi.URLParam(r, "petID"))

		st, err := svc.Stats(r.Context(), petID)
		if err != nil {
			if errors.Is(err, ErrPetNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := StatsResponse{PetID: petID, Total: st.Total, Located: st.Located}
		if st.Last != nil {
			last := ToEventResponse(*st.Last)
			out.Last = &last
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ToEventResponse(e scans.ScanEvent) EventResponse {
	return EventResponse{
		ID:        e.ID,
		PetID:     e.PetID,
		Kind:      e.Kind,
		TsUTC:     e.Timestamp.UTC().Format(scans.TimestampLayout),
		IP:        e.IP,
		UserAgent: e.UserAgent,
		Referrer:  e.Referrer,
		Note:      e.Note,
		Location:  toPoint(e),
	}
}

func toPoint(e scans.ScanEvent) *PointResponse {
	if e.Location == nil {
		return nil
	}
	return &PointResponse{
		Lat:      e.Location.Lat,
		Lon:      e.Location.Lon,
		Accuracy: e.Location.Accuracy,
		TsUTC:    e.Timestamp.UTC().Format(scans.TimestampLayout),
	}
}

func toPublicPet(p pets.Pet) PublicPetResponse {
	return PublicPetResponse{
		ID:           p.ID,
		Name:         p.Name,
		Photo:        p.Photo,
		Status:       p.Status,
		Breed:        p.Breed,
		Sex:          p.Sex,
		Age:          p.Age,
		Size:         p.Size,
		Color:        p.Color,
		Chip:         p.Chip,
		Vaccinated:   p.Vaccinated,
		Neutered:     p.Neutered,
		Allergies:    p.Allergies,
		Medication:   p.Medication,
		Temperament:  p.Temperament,
		SpecialMarks: p.SpecialMarks,
		Reward:       p.Reward,
		Notes:        p.Notes,
	}
}

func requestMeta(r *http.Request) RequestMeta {
	return RequestMeta{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}

const maxBodyBytes = 64 << 10

// readFields junta los campos del body: JSON si el Content-Type lo dice, form si no.
// Los números de JSON se pasan a texto; el parseo de coordenadas es uno solo.
func readFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()

		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out := make(map[string]string, len(raw))
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
			case string:
				out[k] = t
			case json.Number:
				out[k] = t.String()
			default:
				out[k] = fmt.Sprint(t)
			}
		}
		return out, nil
	}

	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(r.Form))
	for k := range r.Form {
		out[k] = r.Form.Get(k)
	}
	return out, nil
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// writeServiceError responde en el formato de los endpoints públicos ({"ok":false,...}).
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPetNotFound), errors.Is(err, pets.ErrNotFound):
		writeJSON(w, http.StatusNotFound, okResponse{OK: false, Error: "pet_not_found"})
	default:
		writeJSON(w, http.StatusInternalServerError, okResponse{OK: false, Error: "internal_error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
