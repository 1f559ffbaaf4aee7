package http

import (
	"net/http"

	"prtrack/internal/auth"
	"prtrack/internal/config"
	"prtrack/internal/http/handler"
	mw "prtrack/internal/http/middleware"
	"prtrack/internal/pr"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, svc *pr.Service, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.AuthEnabled() {
		ah := &handler.AuthHandler{JWT: jwtSvc, PasswordHash: cfg.AuthPasswordHash}
		r.Post("/auth/login", ah.Login)

		me := &handler.MeHandler{}
		r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)
	}

	rh := &handler.RecordHandler{Svc: svc}
	qh := &handler.QueryHandler{Svc: svc}

	r.Group(func(r chi.Router) {
		if cfg.AuthEnabled() {
			r.Use(auth.RequireAuth(jwtSvc))
		}

		r.Route("/records", func(r chi.Router) {
			r.Get("/", rh.List)
			r.Post("/", rh.Create)
			r.Get("/export.csv", rh.ExportCSV)
			r.Put("/{id}", rh.Update)
			r.Delete("/{id}", rh.Delete)
		})

		r.Get("/availability", qh.Availability)
		r.Get("/next-sequence", qh.NextSequence)
		r.Get("/stats", qh.Stats)
	})

	return r
}
