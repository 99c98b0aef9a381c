package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}
func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}
func (m *MockProfileRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*entity.Profile, error) {
	args := m.Called(ctx, contactNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}
func (m *MockProfileRepository) ListActive(ctx context.Context) ([]*entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Profile), args.Error(1)
}
func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockProfileRepository) SetResetOTP(ctx context.Context, id string, otpHash string, expiry time.Time) error {
	args := m.Called(ctx, id, otpHash, expiry)
	return args.Error(0)
}
func (m *MockProfileRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockProfileRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSMSSender struct{ mock.Mock }

func (m *MockSMSSender) Send(ctx context.Context, toContactNumber, message string) error {
	args := m.Called(ctx, toContactNumber, message)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	args := m.Called(ctx, subject, event)
	return args.Error(0)
}

func newTestAuthUsecase(repo *MockProfileRepository, sender *MockSMSSender, publisher *MockPublisher) *AuthUsecase {
	logger, _ := zap.NewDevelopment()
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	otps := NewOTPGenerator(10 * time.Minute)
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewAuthUsecase(repo, hasher, otps, tokens, sender, publisher, logger)
}

func hashForTest(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockProfileRepository)
		publisher := new(MockPublisher)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), publisher)

		var storedHash string
		repo.On("Create", ctx, mock.AnythingOfType("*entity.Profile")).Run(func(args mock.Arguments) {
			p := args.Get(1).(*entity.Profile)
			storedHash = p.Password
			assert.True(t, p.IsActive)
		}).Return("profile123", nil).Once()
		publisher.On("Publish", ctx, "rommie.profile.registered", mock.Anything).Return(nil).Once()

		id, token, err := uc.Register(ctx, RegisterInput{
			ContactNumber: "9876543210",
			Password:      "secret123",
			FullName:      "Asha",
			City:          "Pune",
		})

		assert.NoError(t, err)
		assert.Equal(t, "profile123", id)
		assert.NotEmpty(t, token)

		// Plaintext never stored.
		assert.NotEqual(t, "secret123", storedHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret123")))

		claims, err := uc.tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "profile123", claims.Subject)
		assert.Equal(t, "9876543210", claims.ContactNumber)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("DuplicateContactNumber", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("Create", ctx, mock.AnythingOfType("*entity.Profile")).
			Return("", repository.ErrDuplicateContactNumber).Once()

		_, _, err := uc.Register(ctx, RegisterInput{ContactNumber: "9876543210", Password: "secret123"})
		assert.ErrorIs(t, err, repository.ErrDuplicateContactNumber)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidContactNumber", func(t *testing.T) {
		uc := newTestAuthUsecase(new(MockProfileRepository), new(MockSMSSender), new(MockPublisher))

		_, _, err := uc.Register(ctx, RegisterInput{ContactNumber: "12345", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidContactNumber)

		_, _, err = uc.Register(ctx, RegisterInput{ContactNumber: "98765abc10", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidContactNumber)
	})

	t.Run("PasswordTooShort", func(t *testing.T) {
		uc := newTestAuthUsecase(new(MockProfileRepository), new(MockSMSSender), new(MockPublisher))

		_, _, err := uc.Register(ctx, RegisterInput{ContactNumber: "9876543210", Password: "abc"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	activeProfile := func(t *testing.T) *entity.Profile {
		return &entity.Profile{
			ID:            "profile123",
			ContactNumber: "9876543210",
			Password:      hashForTest(t, "secret123"),
			IsActive:      true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "9876543210").Return(activeProfile(t), nil).Once()

		id, token, err := uc.Login(ctx, "9876543210", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "profile123", id)

		claims, err := uc.tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "profile123", claims.Subject)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownContactNumber", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "1111111111").Return(nil, repository.ErrNotFound).Once()

		_, _, err := uc.Login(ctx, "1111111111", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "9876543210").Return(activeProfile(t), nil).Once()

		_, _, err := uc.Login(ctx, "9876543210", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		profile := activeProfile(t)
		profile.IsActive = false
		repo.On("GetByContactNumber", ctx, "9876543210").Return(profile, nil).Once()

		_, _, err := uc.Login(ctx, "9876543210", "secret123")
		assert.ErrorIs(t, err, ErrAccountDeactivated)
	})
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByID", ctx, "profile123").Return(&entity.Profile{
			ID:       "profile123",
			Password: hashForTest(t, "oldpassword"),
			IsActive: true,
		}, nil).Once()

		var newHash string
		repo.On("UpdatePassword", ctx, "profile123", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			newHash = args.String(2)
		}).Return(nil).Once()

		err := uc.ChangePassword(ctx, "profile123", "oldpassword", "newpassword")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword")))
		repo.AssertExpectations(t)
	})

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByID", ctx, "profile123").Return(&entity.Profile{
			ID:       "profile123",
			Password: hashForTest(t, "oldpassword"),
		}, nil).Once()

		err := uc.ChangePassword(ctx, "profile123", "notmypassword", "newpassword")
		assert.ErrorIs(t, err, ErrCurrentPasswordIncorrect)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NewPasswordTooShort", func(t *testing.T) {
		uc := newTestAuthUsecase(new(MockProfileRepository), new(MockSMSSender), new(MockPublisher))

		err := uc.ChangePassword(ctx, "profile123", "oldpassword", "abc")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAuthUsecase_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("HashesOTPAndSendsSMS", func(t *testing.T) {
		repo := new(MockProfileRepository)
		sender := new(MockSMSSender)
		publisher := new(MockPublisher)
		uc := newTestAuthUsecase(repo, sender, publisher)

		repo.On("GetByContactNumber", ctx, "9876543210").Return(&entity.Profile{
			ID:            "profile123",
			ContactNumber: "9876543210",
			IsActive:      true,
		}, nil).Once()

		var storedHash string
		var storedExpiry time.Time
		repo.On("SetResetOTP", ctx, "profile123", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) {
				storedHash = args.String(2)
				storedExpiry = args.Get(3).(time.Time)
			}).Return(nil).Once()

		var sentMessage string
		sender.On("Send", ctx, "9876543210", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			sentMessage = args.String(2)
		}).Return(nil).Once()

		publisher.On("Publish", ctx, "rommie.profile.password_reset_requested", mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(2).(map[string]interface{})
				_, hasOTP := event["otp"]
				assert.False(t, hasOTP)
			}).Return(nil).Once()

		err := uc.RequestPasswordReset(ctx, "9876543210")
		assert.NoError(t, err)

		// The SMS carries a 6-digit code whose bcrypt hash is what got stored.
		code := extractOTP(t, sentMessage)
		assert.Len(t, code, 6)
		assert.NotContains(t, storedHash, code)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(code)))

		assert.WithinDuration(t, time.Now().Add(10*time.Minute), storedExpiry, 5*time.Second)

		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("UnknownContactNumber", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "1111111111").Return(nil, repository.ErrNotFound).Once()

		err := uc.RequestPasswordReset(ctx, "1111111111")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		repo.AssertNotCalled(t, "SetResetOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_VerifyResetOTP(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-1 * time.Minute)

	profileWith := func(t *testing.T, otp string, expiry *time.Time) *entity.Profile {
		p := &entity.Profile{ID: "profile123", ContactNumber: "9876543210", IsActive: true}
		if otp != "" {
			p.ResetOTP = hashForTest(t, otp)
		}
		p.ResetOTPExpiry = expiry
		return p
	}

	t.Run("Valid", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))
		repo.On("GetByContactNumber", ctx, "9876543210").Return(profileWith(t, "123456", &future), nil).Once()

		assert.NoError(t, uc.VerifyResetOTP(ctx, "9876543210", "123456"))
	})

	t.Run("NoPendingReset", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))
		repo.On("GetByContactNumber", ctx, "9876543210").Return(profileWith(t, "", nil), nil).Once()

		assert.ErrorIs(t, uc.VerifyResetOTP(ctx, "9876543210", "123456"), ErrNoResetRequest)
	})

	t.Run("Expired", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))
		repo.On("GetByContactNumber", ctx, "9876543210").Return(profileWith(t, "123456", &past), nil).Once()

		assert.ErrorIs(t, uc.VerifyResetOTP(ctx, "9876543210", "123456"), ErrOTPExpired)
	})

	t.Run("WrongCode", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))
		repo.On("GetByContactNumber", ctx, "9876543210").Return(profileWith(t, "123456", &future), nil).Once()

		assert.ErrorIs(t, uc.VerifyResetOTP(ctx, "9876543210", "654321"), ErrInvalidOTP)
	})

	t.Run("MalformedCode", func(t *testing.T) {
		uc := newTestAuthUsecase(new(MockProfileRepository), new(MockSMSSender), new(MockPublisher))

		assert.ErrorIs(t, uc.VerifyResetOTP(ctx, "9876543210", "12ab56"), ErrInvalidOTPFormat)
	})
}

func TestAuthUsecase_ResetPassword(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(5 * time.Minute)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "9876543210").Return(&entity.Profile{
			ID:             "profile123",
			ContactNumber:  "9876543210",
			Password:       hashForTest(t, "oldpassword"),
			ResetOTP:       hashForTest(t, "123456"),
			ResetOTPExpiry: &future,
			IsActive:       true,
		}, nil).Once()

		var newHash string
		repo.On("ResetPassword", ctx, "profile123", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			newHash = args.String(2)
		}).Return(nil).Once()

		err := uc.ResetPassword(ctx, "9876543210", "123456", "brandnewpass")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brandnewpass")))
		repo.AssertExpectations(t)
	})

	t.Run("WrongOTPLeavesResetPending", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		repo.On("GetByContactNumber", ctx, "9876543210").Return(&entity.Profile{
			ID:             "profile123",
			ContactNumber:  "9876543210",
			ResetOTP:       hashForTest(t, "123456"),
			ResetOTPExpiry: &future,
			IsActive:       true,
		}, nil).Once()

		err := uc.ResetPassword(ctx, "9876543210", "000000", "brandnewpass")
		assert.ErrorIs(t, err, ErrInvalidOTP)
		repo.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExpiredOTP", func(t *testing.T) {
		repo := new(MockProfileRepository)
		uc := newTestAuthUsecase(repo, new(MockSMSSender), new(MockPublisher))

		past := time.Now().Add(-1 * time.Second)
		repo.On("GetByContactNumber", ctx, "9876543210").Return(&entity.Profile{
			ID:             "profile123",
			ContactNumber:  "9876543210",
			ResetOTP:       hashForTest(t, "123456"),
			ResetOTPExpiry: &past,
			IsActive:       true,
		}, nil).Once()

		err := uc.ResetPassword(ctx, "9876543210", "123456", "brandnewpass")
		assert.ErrorIs(t, err, ErrOTPExpired)
		repo.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NewPasswordTooShort", func(t *testing.T) {
		uc := newTestAuthUsecase(new(MockProfileRepository), new(MockSMSSender), new(MockPublisher))

		err := uc.ResetPassword(ctx, "9876543210", "123456", "abc")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

// TestAuthUsecase_FullResetFlow walks request, verify, reset end to end
// against an in-memory profile so the three steps see each other's writes.
func TestAuthUsecase_FullResetFlow(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	sender := new(MockSMSSender)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	uc := newTestAuthUsecase(repo, sender, publisher)

	profile := &entity.Profile{
		ID:            "profile123",
		ContactNumber: "9876543210",
		Password:      hashForTest(t, "forgotten"),
		IsActive:      true,
	}

	repo.On("GetByContactNumber", ctx, "9876543210").Return(profile, nil)
	repo.On("SetResetOTP", ctx, "profile123", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			profile.ResetOTP = args.String(2)
			expiry := args.Get(3).(time.Time)
			profile.ResetOTPExpiry = &expiry
		}).Return(nil)

	var code string
	sender.On("Send", ctx, "9876543210", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		code = extractOTP(t, args.String(2))
	}).Return(nil)

	repo.On("ResetPassword", ctx, "profile123", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		profile.Password = args.String(2)
		profile.ResetOTP = ""
		profile.ResetOTPExpiry = nil
	}).Return(nil)

	assert.NoError(t, uc.RequestPasswordReset(ctx, "9876543210"))
	assert.NotEmpty(t, code)
	assert.NoError(t, uc.VerifyResetOTP(ctx, "9876543210", code))
	assert.NoError(t, uc.ResetPassword(ctx, "9876543210", code, "newsecret"))

	// OTP state is cleared, so the same code cannot be replayed.
	assert.ErrorIs(t, uc.ResetPassword(ctx, "9876543210", code, "anotherpass"), ErrNoResetRequest)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte("newsecret")))
}

// TestAuthUsecase_ResetRequestOverwritesPrevious checks the second request
// invalidates the first code.
func TestAuthUsecase_ResetRequestOverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	sender := new(MockSMSSender)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	uc := newTestAuthUsecase(repo, sender, publisher)

	profile := &entity.Profile{
		ID:            "profile123",
		ContactNumber: "9876543210",
		IsActive:      true,
	}

	repo.On("GetByContactNumber", ctx, "9876543210").Return(profile, nil)
	repo.On("SetResetOTP", ctx, "profile123", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			profile.ResetOTP = args.String(2)
			expiry := args.Get(3).(time.Time)
			profile.ResetOTPExpiry = &expiry
		}).Return(nil)

	var codes []string
	sender.On("Send", ctx, "9876543210", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		codes = append(codes, extractOTP(t, args.String(2)))
	}).Return(nil)

	assert.NoError(t, uc.RequestPasswordReset(ctx, "9876543210"))
	assert.NoError(t, uc.RequestPasswordReset(ctx, "9876543210"))
	assert.Len(t, codes, 2)

	// Only the latest code verifies.
	assert.NoError(t, uc.VerifyResetOTP(ctx, "9876543210", codes[1]))
	if codes[0] != codes[1] {
		assert.ErrorIs(t, uc.VerifyResetOTP(ctx, "9876543210", codes[0]), ErrInvalidOTP)
	}
}

func extractOTP(t *testing.T, message string) string {
	t.Helper()
	for _, field := range strings.Fields(message) {
		trimmed := strings.TrimSuffix(field, ".")
		if len(trimmed) == 6 && otpRe.MatchString(trimmed) {
			return trimmed
		}
	}
	t.Fatalf("no OTP found in message: %q", message)
	return ""
}
