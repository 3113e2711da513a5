package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/satoriell/mediatrack/internal/api/middleware"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/sirupsen/logrus"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *models.Database) {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewItemHandler(db, time.UTC, logger)
	fav := NewFavoritesHandler(db, logger)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/{kind}", h.List)
	api.HandleFunc("POST /api/{kind}", h.Create)
	api.HandleFunc("GET /api/{kind}/export", h.Export)
	api.HandleFunc("GET /api/{kind}/{id}", h.Get)
	api.HandleFunc("PUT /api/{kind}/{id}", h.Update)
	api.HandleFunc("DELETE /api/{kind}/{id}", h.Delete)
	api.HandleFunc("GET /api/favorites", fav.List)
	api.HandleFunc("POST /api/favorites/toggle", fav.Toggle)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.Owner(api))
	return mux, db
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Owner-ID", "1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetItem(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{
		"title": "Vinland Saga",
		"status": "Watching",
		"rating": 8,
		"episodes_watched": 10,
		"total_episodes": 24,
		"tags": ["Historical", "Seinen"]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Anime
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if created.ID == 0 || created.Title != "Vinland Saga" {
		t.Errorf("Created item mismatch: %+v", created)
	}

	rec = doJSON(t, mux, "GET", "/api/anime/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var fetched models.Anime
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(fetched.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", fetched.Tags)
	}
	if fetched.Progress == nil || *fetched.Progress < 41.6 || *fetched.Progress > 41.7 {
		t.Errorf("Expected ~41.67%% progress, got %v", fetched.Progress)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{
		"title": "",
		"rating": 15,
		"start_date": "2024-05-01",
		"end_date": "2024-04-01",
		"episodes_watched": 30,
		"total_episodes": 24
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	for _, field := range []string{"title", "rating", "end_date", "episodes_watched"} {
		if payload.Errors[field] == "" {
			t.Errorf("Expected field error for %q, got %v", field, payload.Errors)
		}
	}
}

func TestWhitespaceTitleRejected(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{"title": "   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for whitespace-only title, got %d", rec.Code)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if payload.Errors["title"] == "" {
		t.Errorf("Expected field error for title, got %v", payload.Errors)
	}
}

func TestUnknownKind(t *testing.T) {
	mux, _ := newTestRouter(t)
	rec := doJSON(t, mux, "GET", "/api/movie", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown kind, got %d", rec.Code)
	}
}

func TestMissingOwnerHeader(t *testing.T) {
	mux, _ := newTestRouter(t)
	req := httptest.NewRequest("GET", "/api/anime", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without owner header, got %d", rec.Code)
	}
}

func TestUpdateItem(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/manga", `{"title": "Vagabond", "status": "Watching"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d", rec.Code)
	}

	rec = doJSON(t, mux, "PUT", "/api/manga/1", `{
		"title": "Vagabond",
		"status": "On Hold",
		"chapters_read": 120,
		"tags": ["samurai"]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated models.Manga
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if updated.Status != models.StatusOnHold || updated.ChaptersRead != 120 {
		t.Errorf("Update mismatch: %+v", updated)
	}
}

func TestDeleteItem(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/novel", `{"title": "Mushoku Tensei"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d", rec.Code)
	}

	rec = doJSON(t, mux, "DELETE", "/api/novel/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, mux, "GET", "/api/novel/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestFavoriteToggleEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{"title": "Mob Psycho 100"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/favorites/toggle", `{"kind": "anime", "id": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Toggle failed: %d: %s", rec.Code, rec.Body.String())
	}
	var toggle struct {
		Favorited bool `json:"favorited"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &toggle); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !toggle.Favorited {
		t.Error("First toggle must favorite")
	}

	rec = doJSON(t, mux, "GET", "/api/favorites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("List favorites failed: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Mob Psycho 100") {
		t.Errorf("Expected favorite title in response: %s", rec.Body.String())
	}

	// The detail view carries the favorite state
	rec = doJSON(t, mux, "GET", "/api/anime/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Get failed: %d", rec.Code)
	}
	var fetched models.Anime
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !fetched.Favorited {
		t.Error("Expected favorited flag on the detail response")
	}

	// Toggling an unknown item is a 404, not a silent add
	rec = doJSON(t, mux, "POST", "/api/favorites/toggle", `{"kind": "anime", "id": 99}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown target, got %d", rec.Code)
	}
}

func TestFavoritesListMissingTarget(t *testing.T) {
	mux, db := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{"title": "Kept"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d", rec.Code)
	}
	rec = doJSON(t, mux, "POST", "/api/favorites/toggle", `{"kind": "anime", "id": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Toggle failed: %d", rec.Code)
	}

	// A favorite whose target row is gone is reported, not dropped
	dangling := models.Favorite{OwnerID: 1, Kind: models.KindManga, ObjectID: 42}
	if err := db.Conn().Create(&dangling).Error; err != nil {
		t.Fatalf("Failed to seed dangling favorite: %v", err)
	}

	rec = doJSON(t, mux, "GET", "/api/favorites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("List favorites failed: %d", rec.Code)
	}
	var payload struct {
		Favorites []struct {
			Kind    models.Kind `json:"kind"`
			Title   string      `json:"title"`
			Missing bool        `json:"missing"`
		} `json:"favorites"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(payload.Favorites) != 2 {
		t.Fatalf("Expected 2 favorites, got %d", len(payload.Favorites))
	}
	for _, entry := range payload.Favorites {
		switch entry.Kind {
		case models.KindAnime:
			if entry.Missing || entry.Title != "Kept" {
				t.Errorf("Live favorite mismatch: %+v", entry)
			}
		case models.KindManga:
			if !entry.Missing || entry.Title != "" {
				t.Errorf("Dangling favorite must be flagged missing: %+v", entry)
			}
		}
	}
}

func TestExportEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	rec := doJSON(t, mux, "POST", "/api/anime", `{"title": "Ping Pong"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d", rec.Code)
	}

	rec = doJSON(t, mux, "GET", "/api/anime/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Export failed: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content type mismatch: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "anime_export_") {
		t.Errorf("Disposition mismatch: %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Ping Pong") {
		t.Error("Expected exported row in body")
	}
}
