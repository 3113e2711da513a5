package handlers

import (
	"net/http"
	"strings"

	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/satoriell/mediatrack/internal/services/jikan"
	"github.com/satoriell/mediatrack/internal/services/mangadex"
	"github.com/sirupsen/logrus"
)

// SearchHandler serves provider title searches, annotating each result with
// whether the owner already tracks it
type SearchHandler struct {
	db       *models.Database
	mangadex *mangadex.Client
	jikan    *jikan.Client
	logger   *logrus.Logger
}

// NewSearchHandler creates a search handler over both providers
func NewSearchHandler(db *models.Database, mangadexClient *mangadex.Client, jikanClient *jikan.Client, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		db:       db,
		mangadex: mangadexClient,
		jikan:    jikanClient,
		logger:   logger,
	}
}

type mangaSearchRow struct {
	mangadex.SearchResult
	AlreadyTracked bool `json:"already_tracked"`
}

type animeSearchRow struct {
	jikan.AnimeResult
	AlreadyTracked bool `json:"already_tracked"`
}

type novelSearchRow struct {
	jikan.NovelResult
	AlreadyTracked bool `json:"already_tracked"`
}

func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return "", false
	}
	return q, true
}

// Manga serves GET /api/search/manga
func (h *SearchHandler) Manga(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}

	results, err := h.mangadex.Search(r.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("MangaDex search failed")
		writeError(w, http.StatusBadGateway, "metadata provider unavailable")
		return
	}

	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].ID
	}
	existing, err := h.db.ExistingMangaDexIDs(middleware.OwnerID(r), ids)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve tracked ids")
		writeError(w, http.StatusInternalServerError, "failed to search")
		return
	}

	rows := make([]mangaSearchRow, len(results))
	for i := range results {
		rows[i] = mangaSearchRow{SearchResult: results[i], AlreadyTracked: existing[results[i].ID]}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}

// Anime serves GET /api/search/anime
func (h *SearchHandler) Anime(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}

	results, err := h.jikan.SearchAnime(r.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Jikan anime search failed")
		writeError(w, http.StatusBadGateway, "metadata provider unavailable")
		return
	}

	ids := make([]int64, len(results))
	for i := range results {
		ids[i] = results[i].MALID
	}
	existing, err := h.db.ExistingMALIDs(middleware.OwnerID(r), models.KindAnime, ids)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve tracked ids")
		writeError(w, http.StatusInternalServerError, "failed to search")
		return
	}

	rows := make([]animeSearchRow, len(results))
	for i := range results {
		rows[i] = animeSearchRow{AnimeResult: results[i], AlreadyTracked: existing[results[i].MALID]}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}

// Novels serves GET /api/search/novel
func (h *SearchHandler) Novels(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}

	results, err := h.jikan.SearchNovels(r.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Jikan novel search failed")
		writeError(w, http.StatusBadGateway, "metadata provider unavailable")
		return
	}

	ids := make([]int64, len(results))
	for i := range results {
		ids[i] = results[i].MALID
	}
	existing, err := h.db.ExistingMALIDs(middleware.OwnerID(r), models.KindNovel, ids)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve tracked ids")
		writeError(w, http.StatusInternalServerError, "failed to search")
		return
	}

	rows := make([]novelSearchRow, len(results))
	for i := range results {
		rows[i] = novelSearchRow{NovelResult: results[i], AlreadyTracked: existing[results[i].MALID]}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}
