package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	_ "pet-qr-tracker/docs" // registra la doc de swagger

	"pet-qr-tracker/internal/adapters/storage"
	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/domain/tracking"
	"pet-qr-tracker/internal/metrics"
	"pet-qr-tracker/internal/middleware"
	"pet-qr-tracker/internal/notify"
	"pet-qr-tracker/internal/platform/logger"
	"pet-qr-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, todo en memoria.
	Stores *storage.Stores

	Evaluator  *alerts.Evaluator
	Dispatcher tracking.Dispatcher // nil = no se notifica
	Log        logger.Logger

	BaseURL       string
	DefaultPetID  string
	PetAliases    map[string]string
	RatePerMinute int // 0 = sin límite
}

func NewRouter(opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	stores := opts.Stores
	if stores == nil {
		stores, _ = storage.Open(storage.Options{}) // memoria no falla
	}
	defaultPet := pets.NormalizeID(opts.DefaultPetID)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler(stores, defaultPet))
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	petsSvc := pets.NewService(stores.Pets).WithDefaultID(defaultPet)
	contactsSvc := contacts.NewService(stores.Contacts)
	scansSvc := scans.NewService(stores.Scans)

	trackingSvc := tracking.NewService(tracking.Deps{
		Pets:       petsSvc,
		Scans:      scansSvc,
		Contacts:   contactsSvc,
		Evaluator:  opts.Evaluator,
		Dispatcher: opts.Dispatcher,
		Messages:   notify.NewBuilder(opts.BaseURL),
		Log:        opts.Log,
	})

	// Rutas públicas (lo que abre quien escanea la chapita)
	var writeLimiter func(http.Handler) http.Handler
	if lim := middleware.NewIPRateLimiter(opts.RatePerMinute); lim != nil {
		writeLimiter = lim.Middleware
	}
	tracking.RegisterPublicRoutes(r, trackingSvc, tracking.PublicOptions{
		DefaultPetID: defaultPet,
		Aliases:      opts.PetAliases,
		WriteLimiter: writeLimiter,
	})

	// Admin
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)

		pets.RegisterAdminRoutes(ar, petsSvc)
		contacts.RegisterAdminRoutes(ar, contactsSvc, petsSvc)
		tracking.RegisterAdminRoutes(ar, trackingSvc)
	})

	return r
}

type healthResponse struct {
	OK         bool   `json:"ok"`
	DB         string `json:"db"`
	DefaultPet string `json:"default_pet"`
	Error      string `json:"error,omitempty"`
}

// healthHandler godoc
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func healthHandler(stores *storage.Stores, defaultPet string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		out := healthResponse{OK: true, DB: string(stores.Kind), DefaultPet: defaultPet}
		status := http.StatusOK
		if err := stores.Ping(ctx); err != nil {
			out.OK = false
			out.Error = "db_unavailable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)
	}
}
