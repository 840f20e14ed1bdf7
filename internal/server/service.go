// Package server exposes the batch parser over HTTP: upload quote PDFs,
// download the combined table. It mirrors the interactive upload surface
// the issuer's back office uses.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mgarciaq/finsa-quotes/internal/common"
	"github.com/mgarciaq/finsa-quotes/internal/textextract"
)

type Service struct {
	cfg       *common.Config
	extractor *textextract.Extractor
	logger    *slog.Logger
}

func NewService(cfg *common.Config, extractor *textextract.Extractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, extractor: extractor, logger: logger}
}

// Router builds the HTTP surface.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/extract", s.handleExtract)
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
