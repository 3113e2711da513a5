// Package api wires the HTTP surface: routing, middleware and server
// lifecycle.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/satoriell/mediatrack/internal/api/handlers"
	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/catalog"
	"github.com/satoriell/mediatrack/internal/config"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/satoriell/mediatrack/internal/services/jikan"
	"github.com/satoriell/mediatrack/internal/services/mangadex"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	db       *models.Database
	importer *catalog.Importer
	logger   *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, mangadexClient *mangadex.Client, jikanClient *jikan.Client, importer *catalog.Importer, logger *logrus.Logger) *Server {
	s := &Server{
		db:       db,
		importer: importer,
		logger:   logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux, cfg, mangadexClient, jikanClient)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, cfg *config.Config, mangadexClient *mangadex.Client, jikanClient *jikan.Client) {
	// Health check, the only route without an owner
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("GET /health", healthHandler)

	api := http.NewServeMux()

	dashboardHandler := handlers.NewDashboardHandler(s.db, s.logger)
	api.Handle("GET /api/dashboard", dashboardHandler)

	itemHandler := handlers.NewItemHandler(s.db, cfg.Location(), s.logger)
	api.HandleFunc("GET /api/{kind}", itemHandler.List)
	api.HandleFunc("POST /api/{kind}", itemHandler.Create)
	api.HandleFunc("GET /api/{kind}/export", itemHandler.Export)
	api.HandleFunc("GET /api/{kind}/{id}", itemHandler.Get)
	api.HandleFunc("PUT /api/{kind}/{id}", itemHandler.Update)
	api.HandleFunc("DELETE /api/{kind}/{id}", itemHandler.Delete)

	favoritesHandler := handlers.NewFavoritesHandler(s.db, s.logger)
	api.HandleFunc("GET /api/favorites", favoritesHandler.List)
	api.HandleFunc("POST /api/favorites/toggle", favoritesHandler.Toggle)

	searchHandler := handlers.NewSearchHandler(s.db, mangadexClient, jikanClient, s.logger)
	api.HandleFunc("GET /api/search/manga", searchHandler.Manga)
	api.HandleFunc("GET /api/search/anime", searchHandler.Anime)
	api.HandleFunc("GET /api/search/novel", searchHandler.Novels)

	importHandler := handlers.NewImportHandler(s.importer, s.logger)
	api.HandleFunc("GET /api/import/mangadex/{id}", importHandler.PreviewMangaDex)
	api.HandleFunc("POST /api/import/mangadex/{id}", importHandler.ImportMangaDex)
	api.HandleFunc("GET /api/import/anime/{id}", importHandler.PreviewAnime)
	api.HandleFunc("POST /api/import/anime/{id}", importHandler.ImportAnime)
	api.HandleFunc("GET /api/import/novel/{id}", importHandler.PreviewNovel)
	api.HandleFunc("POST /api/import/novel/{id}", importHandler.ImportNovel)

	mux.Handle("/api/", middleware.Owner(api))
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
