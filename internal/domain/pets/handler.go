package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-qr-tracker/internal/platform/geo"

	"github.com/go-chi/chi/v5"
)

// RegisterAdminRoutes monta el CRUD mínimo de mascotas. El router decide
// qué middleware de auth va delante.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		pr.Put("/{petID}/status", setStatusHandler(svc))
		pr.Put("/{petID}/home", setHomeHandler(svc))
		pr.Delete("/{petID}/home", clearHomeHandler(svc))
	})
}

type createPetRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Photo  string `json:"photo"`
	Status Status `json:"status" enums:"lost,home"`
}

type updatePetRequest struct {
	Name         *string `json:"name"`
	Photo        *string `json:"photo"`
	Breed        *string `json:"breed"`
	Sex          *string `json:"sex"`
	Age          *string `json:"age"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Chip         *string `json:"chip"`
	Vaccinated   *string `json:"vaccinated"`
	Neutered     *string `json:"neutered"`
	Allergies    *string `json:"allergies"`
	Medication   *string `json:"medication"`
	Temperament  *string `json:"temperament"`
	SpecialMarks *string `json:"special_marks"`
	Reward       *string `json:"reward"`
	Notes        *string `json:"notes"`
}

type setStatusRequest struct {
	Status Status `json:"status" enums:"lost,home"`
}

type setHomeRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// PetResponse es la vista admin completa de una mascota.
type PetResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Photo        string            `json:"photo"`
	Status       Status            `json:"status"`
	Breed        string            `json:"breed"`
	Sex          string            `json:"sex"`
	Age          string            `json:"age"`
	Size         string            `json:"size"`
	Color        string            `json:"color"`
	Chip         string            `json:"chip"`
	Vaccinated   string            `json:"vaccinated"`
	Neutered     string            `json:"neutered"`
	Allergies    string            `json:"allergies"`
	Medication   string            `json:"medication"`
	Temperament  string            `json:"temperament"`
	SpecialMarks string            `json:"special_marks"`
	Reward       string            `json:"reward"`
	Notes        string            `json:"notes"`
	Home         *geo.Point        `json:"home,omitempty"`
	LastSeen     *LastSeenResponse `json:"last_seen,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type LastSeenResponse struct {
	At       time.Time     `json:"at"`
	Location *geo.Location `json:"location,omitempty"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota con slug propio (a-z 0-9 - _). Arranca en estado `lost` salvo que se indique otro.
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "id + nombre"
// @Success 201 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "pet already exists"
// @Router /admin/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			ID:     req.ID,
			Name:   req.Name,
			Photo:  req.Photo,
			Status: req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags admin
// @Produce json
// @Success 200 {array} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Router /admin/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags admin
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Success 200 {object} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar perfil
// @Description Solo cambia los campos presentes. El nombre no puede quedar vacío.
// @Tags admin
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param payload body updatePetRequest true "campos a cambiar"
// @Success 200 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), ProfileInput{
			Name:         req.Name,
			Photo:        req.Photo,
			Breed:        req.Breed,
			Sex:          req.Sex,
			Age:          req.Age,
			Size:         req.Size,
			Color:        req.Color,
			Chip:         req.Chip,
			Vaccinated:   req.Vaccinated,
			Neutered:     req.Neutered,
			Allergies:    req.Allergies,
			Medication:   req.Medication,
			Temperament:  req.Temperament,
			SpecialMarks: req.SpecialMarks,
			Reward:       req.Reward,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota con sus escaneos y contactos. La mascota default no se puede borrar.
// @Tags admin
// @Param petID path string true "slug de la mascota"
// @Success 204 "borrada"
// @Failure 400 {string} string "the default pet cannot be deleted"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// setStatusHandler godoc
// @Summary Marcar perdida / en casa
// @Description Cambia el estado de la mascota. Solo con `lost` se evalúan alertas.
// @Tags admin
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param payload body setStatusRequest true "nuevo estado"
// @Success 200 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/status [put]
func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.SetStatus(r.Context(), chi.URLParam(r, "petID"), Status(strings.ToLower(strings.TrimSpace(string(req.Status)))))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToPetResponse(p))
	}
}

// setHomeHandler godoc
// @Summary Cargar hogar
// @Description Punto de referencia para la alerta de distancia. Una coordenada en 0 cuenta como sin hogar.
// @Tags admin
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param payload body setHomeRequest true "lat + lon"
// @Success 200 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/home [put]
func setHomeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setHomeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Lat == nil || req.Lon == nil {
			http.Error(w, "lat and lon are required", http.StatusBadRequest)
			return
		}

		p, err := svc.SetHomeLocation(r.Context(), chi.URLParam(r, "petID"), *req.Lat, *req.Lon)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToPetResponse(p))
	}
}

// clearHomeHandler godoc
// @Summary Borrar hogar
// @Tags admin
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Success 200 {object} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/home [delete]
func clearHomeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.ClearHomeLocation(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToPetResponse(p))
	}
}

func ToPetResponse(p Pet) PetResponse {
	out := PetResponse{
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
		Home:         p.Home,
		CreatedAt:    p.CreatedAt,
	}
	if p.LastSeen != nil {
		out.LastSeen = &LastSeenResponse{At: p.LastSeen.At, Location: p.LastSeen.Location}
	}
	return out
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
