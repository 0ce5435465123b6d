package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"adcopy/internal/interfaces"
	"adcopy/internal/models"
	"adcopy/internal/services"
)

type mockAdRepo struct {
	ads       map[string]*models.Ad
	favorites map[string]bool
}

var _ interfaces.AdRepository = (*mockAdRepo)(nil)

func newMockAdRepo() *mockAdRepo {
	return &mockAdRepo{ads: map[string]*models.Ad{}, favorites: map[string]bool{}}
}

func (m *mockAdRepo) Create(ctx context.Context, ad *models.Ad) error {
	ad.ID = "ad-" + ad.RequestID
	ad.CreatedAt = time.Now().UTC()
	m.ads[ad.ID] = ad
	return nil
}

func (m *mockAdRepo) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	if ad, ok := m.ads[id]; ok {
		return ad, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdRepo) List(ctx context.Context, filter interfaces.AdFilter) ([]*models.Ad, error) {
	var out []*models.Ad
	for _, ad := range m.ads {
		out = append(out, ad)
	}
	return out, nil
}

func (m *mockAdRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	ad, ok := m.ads[id]
	if !ok {
		return sql.ErrNoRows
	}
	ad.IsFavorite = favorite
	return nil
}

func (m *mockAdRepo) SetTags(ctx context.Context, id string, tags []string) error {
	ad, ok := m.ads[id]
	if !ok {
		return sql.ErrNoRows
	}
	ad.Tags = tags
	return nil
}

func (m *mockAdRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.ads[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.ads, id)
	return nil
}

func newTestHandler(repo interfaces.AdRepository) *AdHandler {
	// No API key: generation always takes the template path.
	client := services.NewDeepSeekClient("https://api.deepseek.com/v1", "", "deepseek-chat")
	return NewAdHandler(repo, services.NewAdGenerator(client), nil)
}

func TestGenerateAdsReturnsVariations(t *testing.T) {
	h := newTestHandler(nil)

	body := `{"name":"2019 Toyota Camry SE","desc":"Clean CarFax, 62k miles, Apple CarPlay, 35 MPG, $289/mo with approved credit","audience":["first-time buyers","OKC"],"tone":"Trustworthy","platform":"meta","variants":3}`
	req := httptest.NewRequest(http.MethodPost, "/ads/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.GenerateAds(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}

	var resp struct {
		Success    bool             `json:"success"`
		Variations []map[string]any `json:"variations"`
		RequestID  string           `json:"request_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	if len(resp.Variations) != 3 {
		t.Fatalf("expected 3 variations got %d", len(resp.Variations))
	}
	if resp.RequestID == "" {
		t.Fatalf("expected a request id")
	}
	for _, v := range resp.Variations {
		desc, _ := v["description"].(string)
		if !strings.Contains(desc, "$289") {
			t.Fatalf("expected offer in description, got %v", v)
		}
	}
}

func TestGenerateAdsAppliesDefaults(t *testing.T) {
	h := newTestHandler(nil)

	body := `{"name":"Standing Desk Pro","desc":"Ergonomic standing desk with memory presets"}`
	req := httptest.NewRequest(http.MethodPost, "/ads/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.GenerateAds(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Variations []map[string]any `json:"variations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Variations) != 3 {
		t.Fatalf("expected default of 3 variations got %d", len(resp.Variations))
	}
	if platform, _ := resp.Variations[0]["platform"].(string); platform != "meta" {
		t.Fatalf("expected default platform meta got %q", platform)
	}
	if tone, _ := resp.Variations[0]["tone"].(string); tone != "Trustworthy" {
		t.Fatalf("expected default tone Trustworthy got %q", tone)
	}
}

func TestGenerateAdsValidation(t *testing.T) {
	h := newTestHandler(nil)

	cases := []string{
		`{"name":"","desc":"A perfectly fine description here"}`,
		`{"name":"Desk","desc":"too short"}`,
		`{"name":"Desk","desc":"A perfectly fine description here","variants":9}`,
		`{"name":"Desk","desc":"A perfectly fine description here","tone":"Angry"}`,
		`{"name":"Desk","desc":"A perfectly fine description here","platform":"myspace"}`,
		`not json`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/ads/generate", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.GenerateAds(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 got %d (%s)", body, w.Code, w.Body.String())
		}
	}
}

func TestGetAdHistoryWithoutStorage(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/ads/history", nil)
	w := httptest.NewRecorder()
	h.GetAdHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp struct {
		Success bool             `json:"success"`
		Ads     []map[string]any `json:"ads"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Total != 0 || len(resp.Ads) != 0 {
		t.Fatalf("expected empty history, got %s", w.Body.String())
	}
}

func TestGetAdHistoryReturnsRecords(t *testing.T) {
	repo := newMockAdRepo()
	repo.ads["ad-1"] = &models.Ad{
		ID: "ad-1", RequestID: "r1", Platform: "meta",
		InputData:  json.RawMessage(`{}`),
		Variations: json.RawMessage(`[]`),
		Tags:       []string{},
	}
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/ads/history?limit=10", nil)
	w := httptest.NewRecorder()
	h.GetAdHistory(w, req)

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 record got %d", resp.Total)
	}
}

func TestGetAdNotFound(t *testing.T) {
	h := newTestHandler(newMockAdRepo())
	r := chi.NewRouter()
	r.Get("/ads/{id}", h.GetAd)

	req := httptest.NewRequest(http.MethodGet, "/ads/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
}

func TestToggleFavorite(t *testing.T) {
	repo := newMockAdRepo()
	repo.ads["ad-1"] = &models.Ad{ID: "ad-1", IsFavorite: false}
	h := newTestHandler(repo)

	r := chi.NewRouter()
	r.Put("/ads/{id}/favorite", h.ToggleFavorite)

	req := httptest.NewRequest(http.MethodPut, "/ads/ad-1/favorite", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fav, _ := resp["is_favorite"].(bool); !fav {
		t.Fatalf("expected favorite true, got %v", resp)
	}

	// Second toggle flips it back.
	req = httptest.NewRequest(http.MethodPut, "/ads/ad-1/favorite", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if fav, _ := resp["is_favorite"].(bool); fav {
		t.Fatalf("expected favorite false after second toggle, got %v", resp)
	}
}

func TestUpdateTags(t *testing.T) {
	repo := newMockAdRepo()
	repo.ads["ad-1"] = &models.Ad{ID: "ad-1"}
	h := newTestHandler(repo)

	r := chi.NewRouter()
	r.Put("/ads/{id}/tags", h.UpdateTags)

	req := httptest.NewRequest(http.MethodPut, "/ads/ad-1/tags", strings.NewReader(`{"tags":["spring","promo"]}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if got := repo.ads["ad-1"].Tags; len(got) != 2 || got[0] != "spring" {
		t.Fatalf("tags not stored: %v", got)
	}
}

func TestDeleteAd(t *testing.T) {
	repo := newMockAdRepo()
	repo.ads["ad-1"] = &models.Ad{ID: "ad-1"}
	h := newTestHandler(repo)

	r := chi.NewRouter()
	r.Delete("/ads/{id}", h.DeleteAd)

	req := httptest.NewRequest(http.MethodDelete, "/ads/ad-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	// Deleting again reports not found.
	req = httptest.NewRequest(http.MethodDelete, "/ads/ad-1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestGetPlatforms(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/platforms", nil)
	w := httptest.NewRecorder()
	h.GetPlatforms(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp struct {
		Platforms map[string]models.PlatformSpec `json:"platforms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Platforms) != 4 {
		t.Fatalf("expected 4 platforms got %d", len(resp.Platforms))
	}
	if resp.Platforms["meta"].Fields["primary"].Max != 125 {
		t.Fatalf("unexpected meta spec: %+v", resp.Platforms["meta"])
	}
}
