package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulsed/pkg/db"
)

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() (http.Handler, error) {
	if a == nil {
		return nil, errors.New("nil api")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := a.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if a.store.DB != nil {
			if err := db.Ping(req.Context(), a.store.DB); err != nil {
				respondError(w, http.StatusServiceUnavailable, err)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)

		// Client portal routes are public and token-gated; rate-limit them to
		// slow bearer-token guessing.
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(60, time.Minute))
			r.Post("/client/validate", a.handleClientValidate)
			r.Get("/client/overview", a.handleClientOverview)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.requirePM)

			r.Post("/projects", a.handleCreateProject)
			r.Get("/projects", a.handleListProjects)
			r.Get("/projects/{projectID}", a.handleGetProject)
			r.Patch("/projects/{projectID}", a.handleUpdateProject)
			r.Post("/projects/{projectID}/archive", a.handleArchiveProject)

			r.Post("/projects/{projectID}/tasks", a.handleCreateTask)
			r.Get("/projects/{projectID}/tasks", a.handleListTasks)
			r.Patch("/tasks/{taskID}", a.handleUpdateTask)
			r.Delete("/tasks/{taskID}", a.handleDeleteTask)

			r.Post("/projects/{projectID}/pulses", a.handlePublishPulse)
			r.Get("/projects/{projectID}/pulses", a.handleListPulses)

			r.Post("/projects/{projectID}/access-tokens", a.handleIssueToken)
			r.Get("/projects/{projectID}/access-tokens", a.handleListTokens)
			r.Post("/access-tokens/{tokenID}/revoke", a.handleRevokeToken)
		})
	})

	return r, nil
}
