package handlers

import (
	"net/http"

	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/catalog"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/sirupsen/logrus"
)

// DashboardHandler serves the owner's catalog overview
type DashboardHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(db *models.Database, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{db: db, logger: logger}
}

// ServeHTTP handles GET /api/dashboard
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	overview, err := catalog.BuildOverview(h.db, middleware.OwnerID(r))
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard")
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
