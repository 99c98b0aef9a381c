package repository

import (
	"context"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
)

// ProfileRepository is the document-store port for profiles. Implementations
// must enforce contact-number uniqueness and keep every update to a single
// document atomic.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByContactNumber(ctx context.Context, contactNumber string) (*entity.Profile, error)
	ListActive(ctx context.Context) ([]*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetResetOTP stores the OTP hash and its expiry in one write,
	// overwriting any pending reset.
	SetResetOTP(ctx context.Context, id string, otpHash string, expiry time.Time) error

	// ResetPassword sets the new password hash and removes both reset OTP
	// fields in a single atomic update.
	ResetPassword(ctx context.Context, id string, passwordHash string) error

	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
