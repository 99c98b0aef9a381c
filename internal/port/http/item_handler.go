package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"go.uber.org/zap"
)

type ItemHandler struct {
	items   *usecase.ItemUsecase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewItemHandler(items *usecase.ItemUsecase, m *metrics.MetricsManager, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		items:   items,
		metrics: m,
		logger:  logger.Named("ItemHandler"),
	}
}

type itemResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	City     string `json:"city"`
	Landmark string `json:"landmark,omitempty"`

	Title              string `json:"title"`
	Category           string `json:"category"`
	ConditionAgeMonths int    `json:"condition_age_months,omitempty"`

	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	Price        float64 `json:"price"`
	IsNegotiable bool    `json:"is_negotiable"`

	AvailabilityStatus string `json:"availability_status"`

	CoverImageURL string   `json:"cover_image_url,omitempty"`
	ImageURLs     []string `json:"image_urls,omitempty"`

	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	UnpublishedAt *time.Time `json:"unpublished_at,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toItemResponse(item *entity.Item) itemResponse {
	return itemResponse{
		ID:                 item.ID,
		UserID:             item.UserID,
		City:               item.City,
		Landmark:           item.Landmark,
		Title:              item.Title,
		Category:           item.Category,
		ConditionAgeMonths: item.ConditionAgeMonths,
		Description:        item.Description,
		Tags:               item.Tags,
		Price:              item.Price,
		IsNegotiable:       item.IsNegotiable,
		AvailabilityStatus: string(item.AvailabilityStatus),
		CoverImageURL:      item.CoverImageURL,
		ImageURLs:          item.ImageURLs,
		Status:             string(item.Status),
		PublishedAt:        item.PublishedAt,
		UnpublishedAt:      item.UnpublishedAt,
		IsActive:           item.IsActive,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func itemListResponse(items []*entity.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toItemResponse(item)
	}
	return resp
}

type createItemRequest struct {
	City               string   `json:"city"`
	Landmark           string   `json:"landmark,omitempty"`
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	ConditionAgeMonths int      `json:"condition_age_months,omitempty"`
	Description        string   `json:"description,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Price              float64  `json:"price"`
	IsNegotiable       bool     `json:"is_negotiable,omitempty"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.City == "" || req.Title == "" || req.Category == "" || req.Price <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "city, title, category and price are required"})
		return
	}

	item, err := h.items.Create(r.Context(), profileID, usecase.CreateItemInput{
		City:               req.City,
		Landmark:           req.Landmark,
		Title:              req.Title,
		Category:           req.Category,
		ConditionAgeMonths: req.ConditionAgeMonths,
		Description:        req.Description,
		Tags:               req.Tags,
		Price:              req.Price,
		IsNegotiable:       req.IsNegotiable,
	})
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("CreateItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("GetItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toItemResponse(item))
}

// List serves the public feed, narrowed by ?city= or ?category= when given.
// ?status=active widens to every active item regardless of publish state.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []*entity.Item
		err   error
	)
	switch {
	case r.URL.Query().Get("city") != "":
		items, err = h.items.FindByCity(r.Context(), r.URL.Query().Get("city"))
	case r.URL.Query().Get("category") != "":
		items, err = h.items.FindByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("status") == "active":
		items, err = h.items.ListActive(r.Context())
	default:
		items, err = h.items.ListPublished(r.Context())
	}
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ListItems", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemListResponse(items))
}

type updateItemRequest struct {
	City               string   `json:"city,omitempty"`
	Landmark           string   `json:"landmark,omitempty"`
	Title              string   `json:"title,omitempty"`
	Category           string   `json:"category,omitempty"`
	ConditionAgeMonths int      `json:"condition_age_months,omitempty"`
	Description        string   `json:"description,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Price              float64  `json:"price,omitempty"`
	IsNegotiable       *bool    `json:"is_negotiable,omitempty"`
	AvailabilityStatus string   `json:"availability_status,omitempty"`
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.items.Update(r.Context(), chi.URLParam(r, "id"), profileID, usecase.UpdateItemInput{
		City:               req.City,
		Landmark:           req.Landmark,
		Title:              req.Title,
		Category:           req.Category,
		ConditionAgeMonths: req.ConditionAgeMonths,
		Description:        req.Description,
		Tags:               req.Tags,
		Price:              req.Price,
		IsNegotiable:       req.IsNegotiable,
		AvailabilityStatus: entity.ItemAvailability(req.AvailabilityStatus),
	})
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UpdateItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Publish(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	item, err := h.items.Publish(r.Context(), chi.URLParam(r, "id"), profileID)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("PublishItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	h.metrics.ListingsPublishedTotal.Inc()
	respondJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	item, err := h.items.Unpublish(r.Context(), chi.URLParam(r, "id"), profileID)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UnpublishItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSizeBytes); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSizeBytes))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read photo"})
		return
	}

	url, err := h.items.UploadPhoto(r.Context(), chi.URLParam(r, "id"), profileID, header.Filename, data)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UploadItemPhoto", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *ItemHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	if err := h.items.Deactivate(r.Context(), chi.URLParam(r, "id"), profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeactivateItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item deactivated"})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	if err := h.items.Delete(r.Context(), chi.URLParam(r, "id"), profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeleteItem", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
