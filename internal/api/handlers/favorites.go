package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/sirupsen/logrus"
)

// FavoritesHandler serves the cross-kind favorites list and toggle
type FavoritesHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewFavoritesHandler creates a favorites handler
func NewFavoritesHandler(db *models.Database, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{db: db, logger: logger}
}

// favoriteEntry is one favorites-list row. Favorites pointing at deleted
// items are reported as missing rather than dropped silently.
type favoriteEntry struct {
	Kind      models.Kind `json:"kind"`
	ObjectID  uint        `json:"object_id"`
	Title     string      `json:"title,omitempty"`
	Missing   bool        `json:"missing,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// List serves GET /api/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerID(r)

	favorites, err := h.db.ListFavorites(ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list favorites")
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	// Resolve targets with one query per kind, never one per favorite
	idsByKind := make(map[models.Kind][]uint)
	for _, fav := range favorites {
		idsByKind[fav.Kind] = append(idsByKind[fav.Kind], fav.ObjectID)
	}
	titles := make(map[models.Kind]map[uint]string, len(idsByKind))
	for kind, ids := range idsByKind {
		resolved, err := h.db.ItemTitles(ownerID, kind, ids)
		if err != nil {
			h.logger.WithError(err).Error("Failed to resolve favorite targets")
			writeError(w, http.StatusInternalServerError, "failed to list favorites")
			return
		}
		titles[kind] = resolved
	}

	entries := make([]favoriteEntry, 0, len(favorites))
	for _, fav := range favorites {
		entry := favoriteEntry{
			Kind:      fav.Kind,
			ObjectID:  fav.ObjectID,
			CreatedAt: fav.CreatedAt,
		}
		if title, ok := titles[fav.Kind][fav.ObjectID]; ok {
			entry.Title = title
		} else {
			entry.Missing = true
		}
		entries = append(entries, entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{"favorites": entries})
}

type toggleInput struct {
	Kind models.Kind `json:"kind"`
	ID   uint        `json:"id"`
}

// Toggle serves POST /api/favorites/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerID(r)

	var in toggleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if _, err := models.ParseKind(string(in.Kind)); err != nil {
		writeError(w, http.StatusBadRequest, "unknown item kind")
		return
	}
	if in.ID == 0 {
		writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	// Only the owner's own items can be favorited
	match, err := h.db.FindItem(ownerID, in.Kind, in.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve toggle target")
		writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}
	if match == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	favorited, err := h.db.ToggleFavorite(ownerID, in.Kind, in.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to toggle favorite")
		writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":      in.Kind,
		"id":        in.ID,
		"favorited": favorited,
	})
}
