package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/catalog"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/sirupsen/logrus"
)

// kindOps binds the generic catalog operations to one concrete item kind so
// the handler can dispatch on the {kind} path segment
type kindOps struct {
	list   func(ownerID uint, opts catalog.Options) (any, error)
	get    func(ownerID, id uint) (any, error)
	create func(ownerID uint, in *itemInput) (any, error)
	update func(ownerID, id uint, in *itemInput) (any, error)
	export func(ownerID uint, f catalog.Filters, loc *time.Location, w io.Writer) error
}

// newKindOps instantiates the generic catalog engine for one model type.
// assign copies the kind-specific input fields onto the item.
func newKindOps[T any, P catalog.Entry[T]](db *models.Database, assign func(item P, in *itemInput)) kindOps {
	return kindOps{
		list: func(ownerID uint, opts catalog.Options) (any, error) {
			return catalog.List[T, P](db, ownerID, opts)
		},
		get: func(ownerID, id uint) (any, error) {
			return catalog.Get[T, P](db, ownerID, id)
		},
		create: func(ownerID uint, in *itemInput) (any, error) {
			var item T
			p := P(&item)
			in.applyBase(p.Base())
			p.Base().OwnerID = ownerID
			assign(p, in)
			if err := catalog.CreateItem[T, P](db, p, in.Tags); err != nil {
				return nil, err
			}
			return &item, nil
		},
		update: func(ownerID, id uint, in *itemInput) (any, error) {
			item, err := catalog.Get[T, P](db, ownerID, id)
			if err != nil {
				return nil, err
			}
			p := P(item)
			in.applyBase(p.Base())
			assign(p, in)
			if err := catalog.SaveItem[T, P](db, p, in.Tags); err != nil {
				return nil, err
			}
			return item, nil
		},
		export: func(ownerID uint, f catalog.Filters, loc *time.Location, w io.Writer) error {
			return catalog.Export[T, P](db, ownerID, f, loc, w)
		},
	}
}

// ItemHandler serves the per-kind CRUD, list and export endpoints
type ItemHandler struct {
	db       *models.Database
	logger   *logrus.Logger
	location *time.Location
	validate *validator.Validate
	ops      map[models.Kind]kindOps
}

// NewItemHandler creates an item handler covering all four kinds
func NewItemHandler(db *models.Database, location *time.Location, logger *logrus.Logger) *ItemHandler {
	ops := map[models.Kind]kindOps{
		models.KindAnime: newKindOps[models.Anime](db, func(item *models.Anime, in *itemInput) {
			item.MALID = in.MALID
			item.Studio = in.Studio
			item.EpisodesWatched = in.EpisodesWatched
			item.TotalEpisodes = in.TotalEpisodes
		}),
		models.KindWebtoon: newKindOps[models.Webtoon](db, func(item *models.Webtoon, in *itemInput) {
			item.MangaDexID = in.MangaDexID
			item.Author = in.Author
			item.Artist = in.Artist
			item.ChaptersRead = in.ChaptersRead
			item.TotalChapters = in.TotalChapters
			item.Platform = in.Platform
		}),
		models.KindManga: newKindOps[models.Manga](db, func(item *models.Manga, in *itemInput) {
			item.MangaDexID = in.MangaDexID
			item.Author = in.Author
			item.Artist = in.Artist
			item.ChaptersRead = in.ChaptersRead
			item.VolumesRead = in.VolumesRead
			item.TotalChapters = in.TotalChapters
			item.TotalVolumes = in.TotalVolumes
		}),
		models.KindNovel: newKindOps[models.Novel](db, func(item *models.Novel, in *itemInput) {
			item.MALID = in.MALID
			item.Author = in.Author
			item.ChaptersRead = in.ChaptersRead
			item.VolumesRead = in.VolumesRead
			item.TotalChapters = in.TotalChapters
			item.TotalVolumes = in.TotalVolumes
		}),
	}

	return &ItemHandler{
		db:       db,
		logger:   logger,
		location: location,
		validate: validator.New(),
		ops:      ops,
	}
}

func (h *ItemHandler) kindFromPath(w http.ResponseWriter, r *http.Request) (models.Kind, kindOps, bool) {
	kind, err := models.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown item kind")
		return "", kindOps{}, false
	}
	return kind, h.ops[kind], true
}

func idFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusNotFound, "invalid item id")
		return 0, false
	}
	return uint(id), true
}

func filtersFromQuery(r *http.Request) catalog.Filters {
	query := r.URL.Query()
	return catalog.Filters{
		Status: models.Status(query.Get("status")),
		Tag:    query.Get("tag"),
		Search: query.Get("q"),
	}
}

// List serves GET /api/{kind}: one page of items plus the owner's tag
// vocabulary for the kind
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ops, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}
	ownerID := middleware.OwnerID(r)

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	opts := catalog.Options{
		Filters: filtersFromQuery(r),
		Sort:    catalog.Sort(query.Get("sort")),
		Page:    page,
	}

	result, err := ops.list(ownerID, opts)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list items")
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	tags, err := h.db.UserTags(ownerID, kind)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load tag vocabulary")
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind": kind,
		"page": result,
		"tags": tags,
	})
}

// Get serves GET /api/{kind}/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, ops, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	item, err := ops.get(middleware.OwnerID(r), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load item")
		writeError(w, http.StatusInternalServerError, "failed to load item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create serves POST /api/{kind}
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, ops, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}

	var in itemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if fields := in.validate(h.validate); fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	item, err := ops.create(middleware.OwnerID(r), &in)
	if errors.Is(err, catalog.ErrDuplicate) {
		writeError(w, http.StatusConflict, "external id already tracked")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to create item")
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update serves PUT /api/{kind}/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, ops, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var in itemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if fields := in.validate(h.validate); fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	item, err := ops.update(middleware.OwnerID(r), id, &in)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if errors.Is(err, catalog.ErrDuplicate) {
		writeError(w, http.StatusConflict, "external id already tracked")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update item")
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete serves DELETE /api/{kind}/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, _, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	err := catalog.Delete(h.db, middleware.OwnerID(r), kind, id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete item")
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export serves GET /api/{kind}/export as a CSV download honoring the same
// filters as the list view
func (h *ItemHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind, ops, ok := h.kindFromPath(w, r)
	if !ok {
		return
	}
	filters := filtersFromQuery(r)

	filename := catalog.ExportFilename(kind, filters, time.Now().In(h.location))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := ops.export(middleware.OwnerID(r), filters, h.location, w); err != nil {
		// Headers are already on the wire; all we can do is log
		h.logger.WithError(err).Error("Failed to export items")
	}
}
