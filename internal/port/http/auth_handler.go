package http

import (
	"encoding/json"
	"net/http"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    *usecase.AuthUsecase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, m *metrics.MetricsManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		metrics: m,
		logger:  logger.Named("AuthHandler"),
	}
}

type registerRequest struct {
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`

	FullName      string   `json:"full_name,omitempty"`
	Age           int      `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	ProfileType   string   `json:"profile_type,omitempty"`
	MaritalStatus string   `json:"marital_status,omitempty"`
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

type authResponse struct {
	ProfileID string `json:"profile_id"`
	Token     string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id, token, err := h.auth.Register(r.Context(), usecase.RegisterInput{
		ContactNumber:  req.ContactNumber,
		Password:       req.Password,
		FullName:       req.FullName,
		Age:            req.Age,
		Gender:         req.Gender,
		ProfileType:    req.ProfileType,
		MaritalStatus:  req.MaritalStatus,
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
		h.metrics.APIErrorsTotal.WithLabelValues("Register", errorType(err)).Inc()
		respondError(w, err)
		return
	}

	h.metrics.RegistrationsTotal.Inc()
	respondJSON(w, http.StatusCreated, authResponse{ProfileID: id, Token: token})
}

type loginRequest struct {
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id, token, err := h.auth.Login(r.Context(), req.ContactNumber, req.Password)
	if err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("Login", errorType(err)).Inc()
		respondError(w, err)
		return
	}

	h.metrics.LoginsTotal.Inc()
	respondJSON(w, http.StatusOK, authResponse{ProfileID: id, Token: token})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	profileID, ok := ProfileIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "profile id not found in token"})
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.auth.ChangePassword(r.Context(), profileID, req.OldPassword, req.NewPassword); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ChangePassword", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

type forgotPasswordRequest struct {
	ContactNumber string `json:"contact_number"`
}

// ForgotPassword triggers OTP delivery over SMS. The code itself never
// appears in the response body.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.ContactNumber); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ForgotPassword", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "reset code sent"})
}

type verifyOTPRequest struct {
	ContactNumber string `json:"contact_number"`
	OTP           string `json:"otp"`
}

func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.auth.VerifyResetOTP(r.Context(), req.ContactNumber, req.OTP); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("VerifyResetOTP", errorType(err)).Inc()
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "OTP verified"})
}

type resetPasswordRequest struct {
	ContactNumber string `json:"contact_number"`
	OTP           string `json:"otp"`
	NewPassword   string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.ContactNumber, req.OTP, req.NewPassword); err != nil {
		h.metrics.APIErrorsTotal.WithLabelValues("ResetPassword", errorType(err)).Inc()
		respondError(w, err)
		return
	}

	h.metrics.PasswordResetsTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}
