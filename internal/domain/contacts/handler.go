package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PetChecker evita importar pets desde acá (solo necesitamos saber si existe).
type PetChecker interface {
	Exists(ctx context.Context, petID string) (bool, error)
}

func RegisterAdminRoutes(r chi.Router, svc *Service, petsChk PetChecker) {
	r.Route("/pets/{petID}/contacts", func(cr chi.Router) {
		cr.Get("/", listContactsHandler(svc, petsChk))
		cr.Post("/", addContactHandler(svc, petsChk))
	})
}

type addContactRequest struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Priority int    `json:"priority"`
}

type ContactResponse struct {
	ID       int64  `json:"id"`
	PetID    string `json:"pet_id"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Priority int    `json:"priority"`
}

// listContactsHandler godoc
// @Summary Contactos de la mascota
// @Description Ordenados por prioridad (menor primero) y después por id.
// @Tags admin
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Success 200 {array} ContactResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/contacts [get]
func listContactsHandler(svc *Service, petsChk PetChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !requirePet(w, r, petsChk, petID) {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]ContactResponse, 0, len(items))
		for _, c := range items {
			out = append(out, ToContactResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addContactHandler godoc
// @Summary Agregar contacto
// @Description Label default "Contacto", prioridad default 1. El nombre es obligatorio.
// @Tags admin
// @Accept json
// @Produce json
// @Param petID path string true "slug de la mascota"
// @Param payload body addContactRequest true "contacto"
// @Success 201 {object} ContactResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /admin/pets/{petID}/contacts [post]
func addContactHandler(svc *Service, petsChk PetChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !requirePet(w, r, petsChk, petID) {
			return
		}

		var req addContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Add(r.Context(), AddInput{
			PetID:    petID,
			Label:    req.Label,
			Name:     req.Name,
			Phone:    req.Phone,
			WhatsApp: req.WhatsApp,
			Priority: req.Priority,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToContactResponse(c))
	}
}

func requirePet(w http.ResponseWriter, r *http.Request, petsChk PetChecker, petID string) bool {
	ok, err := petsChk.Exists(r.Context(), petID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return false
	}
	if !ok {
		http.Error(w, "pet not found", http.StatusNotFound)
		return false
	}
	return true
}

func ToContactResponse(c Contact) ContactResponse {
	return ContactResponse{
		ID:       c.ID,
		PetID:    c.PetID,
		Label:    c.Label,
		Name:     c.Name,
		Phone:    c.Phone,
		WhatsApp: c.WhatsApp,
		Priority: c.Priority,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
