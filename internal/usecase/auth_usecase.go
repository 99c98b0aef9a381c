package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/messaging"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/sms"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountDeactivated       = errors.New("account is deactivated")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrNoResetRequest           = errors.New("no password reset request found")
	ErrOTPExpired               = errors.New("OTP has expired")
	ErrInvalidOTP               = errors.New("invalid OTP")

	ErrInvalidContactNumber = errors.New("contact number must be 10 digits")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrInvalidOTPFormat     = errors.New("OTP must be a 6-digit number")
)

var (
	contactNumberRe = regexp.MustCompile(`^[0-9]{10}$`)
	otpRe           = regexp.MustCompile(`^[0-9]{6}$`)
)

const minPasswordLength = 6

// AuthUsecase owns the credential lifecycle: registration, login, password
// change, and the OTP-driven reset flow. Every state transition is a single
// atomic write against the profile store; no lock is held across reset
// steps, so concurrent reset requests resolve last-write-wins.
type AuthUsecase struct {
	profiles  repository.ProfileRepository
	hasher    PasswordHasher
	otps      OTPGenerator
	tokens    *TokenIssuer
	sender    sms.Sender
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewAuthUsecase(
	profiles repository.ProfileRepository,
	hasher PasswordHasher,
	otps OTPGenerator,
	tokens *TokenIssuer,
	sender sms.Sender,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		profiles:  profiles,
		hasher:    hasher,
		otps:      otps,
		tokens:    tokens,
		sender:    sender,
		publisher: publisher,
		logger:    logger.Named("AuthUsecase"),
	}
}

// RegisterInput carries the credential pair plus the optional profile
// attributes collected at sign-up.
type RegisterInput struct {
	ContactNumber string
	Password      string

	FullName      string
	Age           int
	Gender        string
	ProfileType   string
	MaritalStatus string
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

// Register creates a profile with a hashed password and returns its id with
// a freshly issued token. A duplicate contact number surfaces as
// repository.ErrDuplicateContactNumber.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (string, string, error) {
	if !contactNumberRe.MatchString(in.ContactNumber) {
		return "", "", ErrInvalidContactNumber
	}
	if len(in.Password) < minPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		u.logger.Error("failed to hash password during registration", zap.Error(err))
		return "", "", err
	}

	now := time.Now()
	profile := &entity.Profile{
		ContactNumber:  in.ContactNumber,
		Password:       hash,
		FullName:       in.FullName,
		Age:            in.Age,
		Gender:         in.Gender,
		ProfileType:    in.ProfileType,
		MaritalStatus:  in.MaritalStatus,
		Introduction:   in.Introduction,
		Personality:    in.Personality,
		Interests:      in.Interests,
		Hometown:       in.Hometown,
		City:           in.City,
		Address:        in.Address,
		FoodPreference: in.FoodPreference,
		Drinking:       in.Drinking,
		Smoking:        in.Smoking,
		Pets:           in.Pets,
		RoomCleaning:   in.RoomCleaning,
		WorkSchedule:   in.WorkSchedule,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := u.profiles.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateContactNumber) {
			u.logger.Warn("registration with duplicate contact number", zap.String("contactNumber", in.ContactNumber))
		} else {
			u.logger.Error("failed to create profile", zap.Error(err))
		}
		return "", "", err
	}

	token, err := u.tokens.Issue(id, in.ContactNumber)
	if err != nil {
		u.logger.Error("failed to issue token after registration", zap.String("profileID", id), zap.Error(err))
		return "", "", err
	}

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, messaging.SubjectProfileRegistered, map[string]string{
			"profile_id": id,
			"city":       in.City,
		}); err != nil {
			u.logger.Warn("failed to publish profile.registered event", zap.Error(err))
		}
	}

	u.logger.Info("profile registered", zap.String("profileID", id))
	return id, token, nil
}

// Login authenticates by contact number and password. Unknown numbers and
// wrong passwords both return ErrInvalidCredentials so the response does
// not leak whether an account exists. Read-only.
func (u *AuthUsecase) Login(ctx context.Context, contactNumber, password string) (string, string, error) {
	profile, err := u.profiles.GetByContactNumber(ctx, contactNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !profile.IsActive {
		return "", "", ErrAccountDeactivated
	}

	if err := u.hasher.Compare(profile.Password, password); err != nil {
		u.logger.Warn("login with wrong password", zap.String("profileID", profile.ID))
		return "", "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(profile.ID, profile.ContactNumber)
	if err != nil {
		u.logger.Error("failed to issue token on login", zap.String("profileID", profile.ID), zap.Error(err))
		return "", "", err
	}
	return profile.ID, token, nil
}

// ChangePassword verifies the current password before replacing the hash.
// No token is reissued.
func (u *AuthUsecase) ChangePassword(ctx context.Context, profileID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	profile, err := u.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}

	if err := u.hasher.Compare(profile.Password, oldPassword); err != nil {
		return ErrCurrentPasswordIncorrect
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.profiles.UpdatePassword(ctx, profileID, hash); err != nil {
		return err
	}

	u.logger.Info("password changed", zap.String("profileID", profileID))
	return nil
}

// RequestPasswordReset stores a hashed OTP with a fresh expiry, overwriting
// any pending reset, and delivers the code over SMS. The OTP is never part
// of the return value.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, contactNumber string) error {
	profile, err := u.profiles.GetByContactNumber(ctx, contactNumber)
	if err != nil {
		return err
	}

	code, expiry, err := u.otps.Generate()
	if err != nil {
		u.logger.Error("failed to generate reset OTP", zap.Error(err))
		return err
	}

	otpHash, err := u.hasher.Hash(code)
	if err != nil {
		u.logger.Error("failed to hash reset OTP", zap.Error(err))
		return err
	}

	if err := u.profiles.SetResetOTP(ctx, profile.ID, otpHash, expiry); err != nil {
		return err
	}

	message := "Your Hello Rommie password reset code is " + code + ". It expires in 10 minutes."
	if err := u.sender.Send(ctx, contactNumber, message); err != nil {
		u.logger.Error("failed to deliver reset OTP", zap.String("profileID", profile.ID), zap.Error(err))
		return err
	}

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, messaging.SubjectPasswordResetRequested, map[string]interface{}{
			"profile_id": profile.ID,
			"expires_at": expiry,
		}); err != nil {
			u.logger.Warn("failed to publish password_reset_requested event", zap.Error(err))
		}
	}

	u.logger.Info("password reset requested", zap.String("profileID", profile.ID))
	return nil
}

// VerifyResetOTP checks a pending OTP without consuming it. Clients may
// skip it and go straight to ResetPassword, which repeats the same checks.
func (u *AuthUsecase) VerifyResetOTP(ctx context.Context, contactNumber, otp string) error {
	if !otpRe.MatchString(otp) {
		return ErrInvalidOTPFormat
	}
	profile, err := u.profiles.GetByContactNumber(ctx, contactNumber)
	if err != nil {
		return err
	}
	return u.checkResetOTP(profile, otp)
}

// ResetPassword completes the reset: on a valid OTP it stores the new hash
// and clears both OTP fields in one write. Any failure leaves the pending
// reset untouched so the legitimate holder can retry within the window.
func (u *AuthUsecase) ResetPassword(ctx context.Context, contactNumber, otp, newPassword string) error {
	if !otpRe.MatchString(otp) {
		return ErrInvalidOTPFormat
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	profile, err := u.profiles.GetByContactNumber(ctx, contactNumber)
	if err != nil {
		return err
	}
	if err := u.checkResetOTP(profile, otp); err != nil {
		return err
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.profiles.ResetPassword(ctx, profile.ID, hash); err != nil {
		return err
	}

	u.logger.Info("password reset completed", zap.String("profileID", profile.ID))
	return nil
}

// checkResetOTP applies the pending / expired / mismatch checks shared by
// VerifyResetOTP and ResetPassword. Expiry is strict: the exact expiry
// instant still counts as valid.
func (u *AuthUsecase) checkResetOTP(profile *entity.Profile, otp string) error {
	if !profile.HasPendingReset() {
		return ErrNoResetRequest
	}
	if time.Now().After(*profile.ResetOTPExpiry) {
		return ErrOTPExpired
	}
	if err := u.hasher.Compare(profile.ResetOTP, otp); err != nil {
		return ErrInvalidOTP
	}
	return nil
}
