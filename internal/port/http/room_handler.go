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

const maxPhotoSizeBytes = 10 << 20 // 10 MiB

type RoomHandler struct {
	rooms   *usecase.RoomUsecase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewRoomHandler(rooms *usecase.RoomUsecase, m *metrics.MetricsManager, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:   rooms,
		metrics: m,
		logger:  logger.Named("RoomHandler"),
	}
}

type roomResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	City     string `json:"city"`
	Landmark string `json:"landmark,omitempty"`

	RoomType string `json:"room_type"`
	SizeSqFt int    `json:"size_sqft,omitempty"`
	Parking  bool   `json:"parking"`

	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`

	RentAmount      float64 `json:"rent_amount"`
	SecurityDeposit float64 `json:"security_deposit,omitempty"`

	CoverImageURL string   `json:"cover_image_url,omitempty"`
	ImageURLs     []string `json:"image_urls,omitempty"`

	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	UnpublishedAt *time.Time `json:"unpublished_at,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRoomResponse(room *entity.Room) roomResponse {
	return roomResponse{
		ID:              room.ID,
		UserID:          room.UserID,
		City:            room.City,
		Landmark:        room.Landmark,
		RoomType:        string(room.RoomType),
		SizeSqFt:        room.SizeSqFt,
		Parking:         room.Parking,
		Title:           room.Title,
		Description:     room.Description,
		Amenities:       room.Amenities,
		RentAmount:      room.RentAmount,
		SecurityDeposit: room.SecurityDeposit,
		CoverImageURL:   room.CoverImageURL,
		ImageURLs:       room.ImageURLs,
		Status:          string(room.Status),
		PublishedAt:     room.PublishedAt,
		UnpublishedAt:   room.UnpublishedAt,
		IsActive:        room.IsActive,
		CreatedAt:       room.CreatedAt,
		UpdatedAt:       room.UpdatedAt,
	}
}

func roomListResponse(rooms []*entity.Room) []roomResponse {
	resp := make([]roomResponse, len(rooms))
	for i, room := range rooms {
		resp[i] = toRoomResponse(room)
	}
	return resp
}

type createRoomRequest struct {
	City            string   `json:"city"`
	Landmark        string   `json:"landmark,omitempty"`
	RoomType        string   `json:"room_type"`
	SizeSqFt        int      `json:"size_sqft,omitempty"`
	Parking         bool     `json:"parking,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
	RentAmount      float64  `json:"rent_amount"`
	SecurityDeposit float64  `json:"security_deposit,omitempty"`
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.City == "" || req.Title == "" || req.RentAmount <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "city, title and rent_amount are required"})
		return
	}

	room, err := h.rooms.Create(r.Context(), profileID, usecase.CreateRoomInput{
		City:            req.City,
		Landmark:        req.Landmark,
		RoomType:        entity.RoomType(req.RoomType),
		SizeSqFt:        req.SizeSqFt,
		Parking:         req.Parking,
		Title:           req.Title,
		Description:     req.Description,
		Amenities:       req.Amenities,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
	})
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("CreateRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("GetRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

// List serves the public feed. ?city= narrows to published rooms in that
// city, ?status=active widens to every active room regardless of publish
// state, and the default is all published rooms.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rooms []*entity.Room
		err   error
	)
	switch {
	case r.URL.Query().Get("city") != "":
		rooms, err = h.rooms.FindByCity(r.Context(), r.URL.Query().Get("city"))
	case r.URL.Query().Get("status") == "active":
		rooms, err = h.rooms.ListActive(r.Context())
	default:
		rooms, err = h.rooms.ListPublished(r.Context())
	}
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ListRooms", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roomListResponse(rooms))
}

type updateRoomRequest struct {
	City            string   `json:"city,omitempty"`
	Landmark        string   `json:"landmark,omitempty"`
	RoomType        string   `json:"room_type,omitempty"`
	SizeSqFt        int      `json:"size_sqft,omitempty"`
	Parking         *bool    `json:"parking,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
	RentAmount      float64  `json:"rent_amount,omitempty"`
	SecurityDeposit float64  `json:"security_deposit,omitempty"`
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	room, err := h.rooms.Update(r.Context(), chi.URLParam(r, "id"), profileID, usecase.UpdateRoomInput{
		City:            req.City,
		Landmark:        req.Landmark,
		RoomType:        entity.RoomType(req.RoomType),
		SizeSqFt:        req.SizeSqFt,
		Parking:         req.Parking,
		Title:           req.Title,
		Description:     req.Description,
		Amenities:       req.Amenities,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
	})
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UpdateRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) Publish(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	room, err := h.rooms.Publish(r.Context(), chi.URLParam(r, "id"), profileID)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("PublishRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	h.metrics.ListingsPublishedTotal.Inc()
	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	room, err := h.rooms.Unpublish(r.Context(), chi.URLParam(r, "id"), profileID)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UnpublishRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
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

	url, err := h.rooms.UploadPhoto(r.Context(), chi.URLParam(r, "id"), profileID, header.Filename, data)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UploadRoomPhoto", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *RoomHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	if err := h.rooms.Deactivate(r.Context(), chi.URLParam(r, "id"), profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeactivateRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "room deactivated"})
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	if err := h.rooms.Delete(r.Context(), chi.URLParam(r, "id"), profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeleteRoom", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "room deleted"})
}
