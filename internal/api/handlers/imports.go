package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/catalog"
	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/sirupsen/logrus"
)

// ImportHandler serves the provider import endpoints: GET previews a
// normalized record, POST stores it
type ImportHandler struct {
	importer *catalog.Importer
	logger   *logrus.Logger
}

// NewImportHandler creates an import handler
func NewImportHandler(importer *catalog.Importer, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, logger: logger}
}

// writeProviderError maps provider outcomes onto HTTP statuses. Anything
// other than a bad id or a missing record counts as the provider being down.
func (h *ImportHandler) writeProviderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metadata.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid external id")
	case errors.Is(err, metadata.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found at provider")
	case errors.Is(err, catalog.ErrDuplicate):
		writeError(w, http.StatusConflict, "external id already tracked")
	default:
		h.logger.WithError(err).Error("Import failed")
		writeError(w, http.StatusBadGateway, "metadata provider unavailable")
	}
}

func malIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid external id")
		return 0, false
	}
	return id, true
}

// PreviewMangaDex serves GET /api/import/mangadex/{id}
func (h *ImportHandler) PreviewMangaDex(w http.ResponseWriter, r *http.Request) {
	fields, err := h.importer.PreviewMangaDex(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// ImportMangaDex serves POST /api/import/mangadex/{id}. A duplicate id
// answers 200 with the already tracked item; a new one answers 201.
func (h *ImportHandler) ImportMangaDex(w http.ResponseWriter, r *http.Request) {
	result, err := h.importer.ImportMangaDex(r.Context(), middleware.OwnerID(r), r.PathValue("id"))
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	h.writeImportResult(w, result)
}

// PreviewAnime serves GET /api/import/anime/{id}
func (h *ImportHandler) PreviewAnime(w http.ResponseWriter, r *http.Request) {
	malID, ok := malIDFromPath(w, r)
	if !ok {
		return
	}
	fields, err := h.importer.PreviewAnime(r.Context(), malID)
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// ImportAnime serves POST /api/import/anime/{id}
func (h *ImportHandler) ImportAnime(w http.ResponseWriter, r *http.Request) {
	malID, ok := malIDFromPath(w, r)
	if !ok {
		return
	}
	result, err := h.importer.ImportAnime(r.Context(), middleware.OwnerID(r), malID)
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	h.writeImportResult(w, result)
}

// PreviewNovel serves GET /api/import/novel/{id}
func (h *ImportHandler) PreviewNovel(w http.ResponseWriter, r *http.Request) {
	malID, ok := malIDFromPath(w, r)
	if !ok {
		return
	}
	fields, err := h.importer.PreviewNovel(r.Context(), malID)
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// ImportNovel serves POST /api/import/novel/{id}
func (h *ImportHandler) ImportNovel(w http.ResponseWriter, r *http.Request) {
	malID, ok := malIDFromPath(w, r)
	if !ok {
		return
	}
	result, err := h.importer.ImportNovel(r.Context(), middleware.OwnerID(r), malID)
	if err != nil {
		h.writeProviderError(w, err)
		return
	}
	h.writeImportResult(w, result)
}

func (h *ImportHandler) writeImportResult(w http.ResponseWriter, result *catalog.ImportResult) {
	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}
