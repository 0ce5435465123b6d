// internal/handlers/ad_handler.go
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"adcopy/internal/interfaces"
	"adcopy/internal/models"
	"adcopy/internal/services"
)

const saveTimeout = 10 * time.Second

type AdHandler struct {
	repo      interfaces.AdRepository // nil when no storage backend is configured
	generator *services.AdGenerator
	archiver  *services.AdArchiver // nil when archiving is disabled
	validator *validator.Validate
}

func NewAdHandler(repo interfaces.AdRepository, generator *services.AdGenerator, archiver *services.AdArchiver) *AdHandler {
	return &AdHandler{
		repo:      repo,
		generator: generator,
		archiver:  archiver,
		validator: validator.New(),
	}
}

// GenerateAds handles POST /api/v1/ads/generate
// @Tags Ads
// @Summary Generate ad copy variations
// @Accept json
// @Produce json
// @Param request body models.GenerateAdsRequest true "Generation parameters"
// @Success 200 {object} models.GenerateAdsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads/generate [post]
func (h *AdHandler) GenerateAds(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateAdsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	requestID := uuid.New().String()

	variations := h.generator.Generate(r.Context(), &req)
	if len(variations) == 0 {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "generation_failed",
			"Failed to generate ad variations. Please try again.")
		return
	}

	// Persist after the response is produced; a failed save never reaches
	// the caller.
	go h.saveAd(requestID, &req, variations)

	writeJSON(w, http.StatusOK, models.GenerateAdsResponse{
		Success:     true,
		Variations:  variations,
		GeneratedAt: time.Now().UTC(),
		RequestID:   requestID,
	})
}

func (h *AdHandler) saveAd(requestID string, req *models.GenerateAdsRequest, variations []models.Variation) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	inputData, err := json.Marshal(req)
	if err != nil {
		log.Printf("Failed to encode input data for %s: %v", requestID, err)
		return
	}
	variationsData, err := json.Marshal(variations)
	if err != nil {
		log.Printf("Failed to encode variations for %s: %v", requestID, err)
		return
	}

	ad := &models.Ad{
		RequestID:  requestID,
		Platform:   string(req.Platform),
		InputData:  inputData,
		Variations: variationsData,
		IsFavorite: false,
		Tags:       []string{},
	}

	if h.repo == nil {
		log.Println("No storage backend configured - skipping save")
	} else if err := h.repo.Create(ctx, ad); err != nil {
		log.Printf("Failed to save ad %s: %v", requestID, err)
	} else {
		log.Printf("Saved ad %s (ID: %s)", requestID, ad.ID)
	}

	if h.archiver != nil {
		if err := h.archiver.Archive(ctx, requestID, ad); err != nil {
			log.Printf("Failed to archive ad %s: %v", requestID, err)
		}
	}
}

// GetAdHistory handles GET /api/v1/ads/history
// @Tags Ads
// @Summary Recent generation history
// @Produce json
// @Param limit query int false "Number of ads to return (max 100)"
// @Param platform query string false "Filter by platform"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/ads/history [get]
func (h *AdHandler) GetAdHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	ads := []*models.Ad{}
	if h.repo != nil {
		filter := interfaces.AdFilter{
			Platform: r.URL.Query().Get("platform"),
			Limit:    limit,
		}
		found, err := h.repo.List(r.Context(), filter)
		if err != nil {
			// Read failures degrade to an empty history.
			log.Printf("Failed to list ads: %v", err)
		} else if found != nil {
			ads = found
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"ads":     ads,
		"total":   len(ads),
	})
}

// GetAd handles GET /api/v1/ads/{id}
// @Tags Ads
// @Summary Get one generation record
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/ads/{id} [get]
func (h *AdHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Ad ID is required")
		return
	}

	ad, err := h.getAd(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "ad": ad})
}

// ToggleFavorite handles PUT /api/v1/ads/{id}/favorite
// @Tags Ads
// @Summary Toggle the favorite flag
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/ads/{id}/favorite [put]
func (h *AdHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ad, err := h.getAd(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	newState := !ad.IsFavorite
	if err := h.repo.SetFavorite(r.Context(), id, newState); err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	message := "Ad removed from favorites"
	if newState {
		message = "Ad added to favorites"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     message,
		"is_favorite": newState,
	})
}

// UpdateTags handles PUT /api/v1/ads/{id}/tags
// @Tags Ads
// @Summary Replace the tag list
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param request body models.UpdateTagsRequest true "New tags"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/ads/{id}/tags [put]
func (h *AdHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if h.repo == nil {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Ad not found")
		return
	}
	if err := h.repo.SetTags(r.Context(), id, req.Tags); err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tags": req.Tags})
}

// DeleteAd handles DELETE /api/v1/ads/{id}
// @Tags Ads
// @Summary Delete a generation record
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/ads/{id} [delete]
func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Ad ID is required")
		return
	}

	if h.repo == nil {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Ad not found")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Ad deleted successfully",
	})
}

// GetPlatforms handles GET /api/v1/platforms
// @Tags Platforms
// @Summary Platform specifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/platforms [get]
func (h *AdHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"platforms": models.PlatformSpecs,
	})
}

func (h *AdHandler) getAd(ctx context.Context, id string) (*models.Ad, error) {
	if h.repo == nil {
		return nil, sql.ErrNoRows
	}
	return h.repo.GetByID(ctx, id)
}

func (h *AdHandler) writeLookupError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Ad not found")
		return
	}
	log.Printf("Ad operation failed for %s: %v", id, err)
	writeJSONErrorResponse(w, http.StatusInternalServerError, "server_error", "Failed to process ad")
}
