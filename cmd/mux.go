package main

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/session"
)

const sessionCookie = "nitro_session"

// server holds the dependencies shared by the HTTP handlers.
type server struct {
	svc      *predict.Service
	sessions *session.Registry
}

// buildMux wires the web UI, the JSON API and the operational endpoints.
func buildMux(svc *predict.Service, sessions *session.Registry, m *metrics.Metrics, corsOrigins []string) http.Handler {
	s := &server{svc: svc, sessions: sessions}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Get("/", s.handleForm)
	r.Post("/predictions", s.handlePredict)
	r.Post("/predictions/report", s.handleReport)
	r.Get("/entries", s.handleEntries)
	r.Post("/entries", s.handleAddEntry)
	r.Post("/entries/{id}/delete", s.handleDeleteEntry)
	r.Get("/risk-analysis", s.handleRiskAnalysis)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: !allowsAnyOrigin(corsOrigins),
			MaxAge:           300,
		}))
		r.Get("/options", s.apiOptions)
		r.Post("/predictions", s.apiPredict)
		r.Get("/entries", s.apiListEntries)
		r.Post("/entries", s.apiAddEntry)
		r.Delete("/entries/{id}", s.apiDeleteEntry)
	})

	return r
}

// store returns the caller's session store, issuing a cookie for new sessions.
func (s *server) store(w http.ResponseWriter, r *http.Request) *session.Store {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	newID, st := s.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return st
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeDocument(w http.ResponseWriter, doc *predict.Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.HTML))
}

// allowsAnyOrigin reports whether origins is the wildcard, which cannot be
// combined with credentialed requests. An empty list means any origin.
func allowsAnyOrigin(origins []string) bool {
	return len(origins) == 0 || slices.Contains(origins, "*")
}
