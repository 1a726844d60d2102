// Package server exposes the page viewer over HTTP.
//
// It stands in for the viewer page: every request names the page with the
// pid and page query parameters, and the response is either the rendered
// page, the block list a sidebar would show, or an hOCR export.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gardar/pageview/pkg/config"
	"github.com/gardar/pageview/pkg/layout"
	"github.com/gardar/pageview/pkg/viewer"
)

type Handler struct {
	*config.Config

	source viewer.Source
	logger *slog.Logger
}

func New(cfg *config.Config, source viewer.Source, logger *slog.Logger) (*Handler, error) {
	if source == nil {
		return nil, errors.New("missing source")
	}

	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		Config: cfg,

		source: source,
		logger: logger,
	}

	return h, nil
}

// Router returns a router with middleware and all routes attached
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	h.Attach(r)

	return r
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Get("/view", h.handleView)
	r.Get("/blocks", h.handleBlocks)
	r.Get("/hocr", h.handleHOCR)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// statusFor maps load errors to response codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, viewer.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, layout.ErrMalformedXML),
		errors.Is(err, layout.ErrNoPage),
		errors.Is(err, layout.ErrInvalidAttribute),
		errors.Is(err, layout.ErrOddPolygon),
		errors.Is(err, layout.ErrMissingPoints):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
