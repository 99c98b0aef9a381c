package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profiles *usecase.ProfileUsecase
	metrics  *metrics.MetricsManager
	logger   *zap.Logger
}

func NewProfileHandler(profiles *usecase.ProfileUsecase, m *metrics.MetricsManager, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		metrics:  m,
		logger:   logger.Named("ProfileHandler"),
	}
}

// profileResponse is the public projection of a profile. Password and reset
// OTP fields never leave the service.
type profileResponse struct {
	ID            string `json:"id"`
	ContactNumber string `json:"contact_number"`

	FullName      string   `json:"full_name,omitempty"`
	Age           int      `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	ProfileType   string   `json:"profile_type,omitempty"`
	MaritalStatus string   `json:"marital_status,omitempty"`
	ProfilePicURL string   `json:"profile_pic_url,omitempty"`
	Introduction  string   `json:"introduction,omitempty"`
	Personality   string   `json:"personality,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Hometown      string   `json:"hometown,omitempty"`
	City          string   `json:"city,omitempty"`
	Address       string   `json:"address,omitempty"`

	FoodPreference string `json:"food_preference,omitempty"`
	Drinking       string `json:"drinking,omitempty"`
	Smoking        string `json:"smoking,omitempty"`
	Pets           string `json:"pets,omitempty"`
	RoomCleaning   string `json:"room_cleaning,omitempty"`
	WorkSchedule   string `json:"work_schedule,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfileResponse(p *entity.Profile) profileResponse {
	return profileResponse{
		ID:             p.ID,
		ContactNumber:  p.ContactNumber,
		FullName:       p.FullName,
		Age:            p.Age,
		Gender:         p.Gender,
		ProfileType:    p.ProfileType,
		MaritalStatus:  p.MaritalStatus,
		ProfilePicURL:  p.ProfilePicURL,
		Introduction:   p.Introduction,
		Personality:    p.Personality,
		Interests:      p.Interests,
		Hometown:       p.Hometown,
		City:           p.City,
		Address:        p.Address,
		FoodPreference: p.FoodPreference,
		Drinking:       p.Drinking,
		Smoking:        p.Smoking,
		Pets:           p.Pets,
		RoomCleaning:   p.RoomCleaning,
		WorkSchedule:   p.WorkSchedule,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListActive(r.Context())
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ListProfiles", errorType(err)).Inc()
		respondError(w, err)
		return
	}

	resp := make([]profileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = toProfileResponse(p)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("GetProfile", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), profileID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(profile))
}

type updateProfileRequest struct {
	FullName      string   `json:"full_name,omitempty"`
	Age           int      `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	MaritalStatus string   `json:"marital_status,omitempty"`
	ProfilePicURL string   `json:"profile_pic_url,omitempty"`
	Introduction  string   `json:"introduction,omitempty"`
	Personality   string   `json:"personality,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Hometown      string   `json:"hometown,omitempty"`
	City          string   `json:"city,omitempty"`
	Address       string   `json:"address,omitempty"`

	FoodPreference string `json:"food_preference,omitempty"`
	Drinking       string `json:"drinking,omitempty"`
	Smoking        string `json:"smoking,omitempty"`
	Pets           string `json:"pets,omitempty"`
	RoomCleaning   string `json:"room_cleaning,omitempty"`
	WorkSchedule   string `json:"work_schedule,omitempty"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}
	id := chi.URLParam(r, "id")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	profile, err := h.profiles.Update(r.Context(), id, profileID, usecase.UpdateProfileInput{
		FullName:       req.FullName,
		Age:            req.Age,
		Gender:         req.Gender,
		MaritalStatus:  req.MaritalStatus,
		ProfilePicURL:  req.ProfilePicURL,
		Introduction:   req.Introduction,
		Personality:    req.Personality,
		Interests:      req.Interests,
		Hometown:       req.Hometown,
		City:           req.City,
		Address:        req.Address,
		FoodPreference: req.FoodPreference,
		Drinking:       req.Drinking,
		Smoking:        req.Smoking,
		Pets:           req.Pets,
		RoomCleaning:   req.RoomCleaning,
		WorkSchedule:   req.WorkSchedule,
	})
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("UpdateProfile", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.profiles.Deactivate(r.Context(), id, profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeactivateProfile", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "profile deactivated"})
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.profiles.Delete(r.Context(), id, profileID); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("DeleteProfile", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
