package usecase

import (
	"context"
	"errors"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/cache"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/messaging"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"go.uber.org/zap"
)

// ErrForbidden is returned when a caller tries to modify a resource they
// do not own.
var ErrForbidden = errors.New("not allowed to modify this resource")

type ProfileUsecase struct {
	profiles  repository.ProfileRepository
	cache     cache.ProfileCache
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewProfileUsecase(
	profiles repository.ProfileRepository,
	profileCache cache.ProfileCache,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *ProfileUsecase {
	return &ProfileUsecase{
		profiles:  profiles,
		cache:     profileCache,
		publisher: publisher,
		logger:    logger.Named("ProfileUsecase"),
	}
}

func (u *ProfileUsecase) ListActive(ctx context.Context) ([]*entity.Profile, error) {
	return u.profiles.ListActive(ctx)
}

// GetByID returns the profile even when deactivated; deactivation blocks
// login, not lookup.
func (u *ProfileUsecase) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return u.profiles.GetByID(ctx, id)
}

func (u *ProfileUsecase) GetByContactNumber(ctx context.Context, contactNumber string) (*entity.Profile, error) {
	return u.profiles.GetByContactNumber(ctx, contactNumber)
}

// UpdateProfileInput carries the mutable profile attributes; zero values
// are left unchanged. Credentials are not updatable here.
type UpdateProfileInput struct {
	FullName      string
	Age           int
	Gender        string
	MaritalStatus string
	ProfilePicURL string
	Introduction  string
	Personality   string
	Interests     []string
	Hometown      string
	City          string
	Address       string

	FoodPreference string
	Drinking       string
	Smoking        string
	Pets           string
	RoomCleaning   string
	WorkSchedule   string
}

func (u *ProfileUsecase) Update(ctx context.Context, id, callerID string, in UpdateProfileInput) (*entity.Profile, error) {
	if id != callerID {
		u.logger.Warn("forbidden profile update", zap.String("profileID", id), zap.String("callerID", callerID))
		return nil, ErrForbidden
	}

	profile, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		profile.FullName = in.FullName
	}
	if in.Age > 0 {
		profile.Age = in.Age
	}
	if in.Gender != "" {
		profile.Gender = in.Gender
	}
	if in.MaritalStatus != "" {
		profile.MaritalStatus = in.MaritalStatus
	}
	if in.ProfilePicURL != "" {
		profile.ProfilePicURL = in.ProfilePicURL
	}
	if in.Introduction != "" {
		profile.Introduction = in.Introduction
	}
	if in.Personality != "" {
		profile.Personality = in.Personality
	}
	if in.Interests != nil {
		profile.Interests = in.Interests
	}
	if in.Hometown != "" {
		profile.Hometown = in.Hometown
	}
	if in.City != "" {
		profile.City = in.City
	}
	if in.Address != "" {
		profile.Address = in.Address
	}
	if in.FoodPreference != "" {
		profile.FoodPreference = in.FoodPreference
	}
	if in.Drinking != "" {
		profile.Drinking = in.Drinking
	}
	if in.Smoking != "" {
		profile.Smoking = in.Smoking
	}
	if in.Pets != "" {
		profile.Pets = in.Pets
	}
	if in.RoomCleaning != "" {
		profile.RoomCleaning = in.RoomCleaning
	}
	if in.WorkSchedule != "" {
		profile.WorkSchedule = in.WorkSchedule
	}

	if err := u.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	u.invalidate(ctx, id)
	return profile, nil
}

// Deactivate flips isActive to false. The record stays readable by id but
// can no longer authenticate, and existing tokens die at the middleware's
// is_active re-check.
func (u *ProfileUsecase) Deactivate(ctx context.Context, id, callerID string) error {
	if id != callerID {
		return ErrForbidden
	}
	if err := u.profiles.Deactivate(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, messaging.SubjectProfileDeactivated, map[string]string{"profile_id": id}); err != nil {
			u.logger.Warn("failed to publish profile.deactivated event", zap.Error(err))
		}
	}
	u.logger.Info("profile deactivated", zap.String("profileID", id))
	return nil
}

func (u *ProfileUsecase) Delete(ctx context.Context, id, callerID string) error {
	if id != callerID {
		return ErrForbidden
	}
	if err := u.profiles.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	u.logger.Info("profile deleted", zap.String("profileID", id))
	return nil
}

func (u *ProfileUsecase) invalidate(ctx context.Context, id string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, id); err != nil {
		u.logger.Warn("failed to invalidate profile cache", zap.String("profileID", id), zap.Error(err))
	}
}
