package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRoomRepository struct{ mock.Mock }

func (m *MockRoomRepository) Create(ctx context.Context, room *entity.Room) (string, error) {
	args := m.Called(ctx, room)
	return args.String(0), args.Error(1)
}
func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}
func (m *MockRoomRepository) ListActive(ctx context.Context) ([]*entity.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Room), args.Error(1)
}
func (m *MockRoomRepository) ListPublished(ctx context.Context) ([]*entity.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Room), args.Error(1)
}
func (m *MockRoomRepository) FindByCity(ctx context.Context, city string) ([]*entity.Room, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Room), args.Error(1)
}
func (m *MockRoomRepository) Update(ctx context.Context, room *entity.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

func newTestRoomUsecase(repo *MockRoomRepository, photos *MockPhotoStorage, publisher *MockPublisher) *RoomUsecase {
	logger, _ := zap.NewDevelopment()
	return NewRoomUsecase(repo, photos, publisher, logger)
}

func TestRoomUsecase_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoomRepository)
	uc := newTestRoomUsecase(repo, new(MockPhotoStorage), new(MockPublisher))

	repo.On("Create", ctx, mock.AnythingOfType("*entity.Room")).Run(func(args mock.Arguments) {
		room := args.Get(1).(*entity.Room)
		assert.Equal(t, "owner1", room.UserID)
		assert.Equal(t, entity.StatusDraft, room.Status)
		assert.True(t, room.IsActive)
	}).Return("room1", nil).Once()

	room, err := uc.Create(ctx, "owner1", CreateRoomInput{
		City:       "Pune",
		RoomType:   entity.RoomTypePrivate,
		Title:      "Sunny room near station",
		RentAmount: 12000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "room1", room.ID)
	repo.AssertExpectations(t)
}

func TestRoomUsecase_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerCanPublish", func(t *testing.T) {
		repo := new(MockRoomRepository)
		publisher := new(MockPublisher)
		uc := newTestRoomUsecase(repo, new(MockPhotoStorage), publisher)

		repo.On("GetByID", ctx, "room1").Return(&entity.Room{
			ID:     "room1",
			UserID: "owner1",
			City:   "Pune",
			Status: entity.StatusDraft,
		}, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*entity.Room")).Return(nil).Once()
		publisher.On("Publish", ctx, "rommie.room.published", mock.Anything).Return(nil).Once()

		room, err := uc.Publish(ctx, "room1", "owner1")
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPublished, room.Status)
		assert.NotNil(t, room.PublishedAt)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockRoomRepository)
		uc := newTestRoomUsecase(repo, new(MockPhotoStorage), new(MockPublisher))

		repo.On("GetByID", ctx, "room1").Return(&entity.Room{
			ID:     "room1",
			UserID: "owner1",
		}, nil).Once()

		_, err := uc.Publish(ctx, "room1", "someone-else")
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRoomRepository)
		uc := newTestRoomUsecase(repo, new(MockPhotoStorage), new(MockPublisher))

		repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := uc.Publish(ctx, "missing", "owner1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRoomUsecase_UploadPhoto(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoomRepository)
	photos := new(MockPhotoStorage)
	uc := newTestRoomUsecase(repo, photos, new(MockPublisher))

	repo.On("GetByID", ctx, "room1").Return(&entity.Room{
		ID:     "room1",
		UserID: "owner1",
	}, nil).Once()
	photos.On("Upload", ctx, "room.jpg", []byte("img")).Return("http://minio/rommie-photos/photos/abc.jpg", nil).Once()

	var updated *entity.Room
	repo.On("Update", ctx, mock.AnythingOfType("*entity.Room")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*entity.Room)
	}).Return(nil).Once()

	url, err := uc.UploadPhoto(ctx, "room1", "owner1", "room.jpg", []byte("img"))
	assert.NoError(t, err)
	assert.Equal(t, "http://minio/rommie-photos/photos/abc.jpg", url)

	// First upload becomes the cover image as well.
	assert.Equal(t, url, updated.CoverImageURL)
	assert.Equal(t, []string{url}, updated.ImageURLs)
	repo.AssertExpectations(t)
	photos.AssertExpectations(t)
}

func TestRoomUsecase_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoomRepository)
	uc := newTestRoomUsecase(repo, new(MockPhotoStorage), new(MockPublisher))

	existing := &entity.Room{
		ID:         "room1",
		UserID:     "owner1",
		City:       "Pune",
		Title:      "Old title",
		RentAmount: 12000,
		CreatedAt:  time.Now().Add(-24 * time.Hour),
	}
	repo.On("GetByID", ctx, "room1").Return(existing, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*entity.Room")).Return(nil).Once()

	room, err := uc.Update(ctx, "room1", "owner1", UpdateRoomInput{
		Title:      "New title",
		RentAmount: 15000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "New title", room.Title)
	assert.Equal(t, float64(15000), room.RentAmount)
	// Untouched fields keep their values.
	assert.Equal(t, "Pune", room.City)
	repo.AssertExpectations(t)
}

func TestRoomUsecase_DeleteRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoomRepository)
	uc := newTestRoomUsecase(repo, new(MockPhotoStorage), new(MockPublisher))

	repo.On("GetByID", ctx, "room1").Return(&entity.Room{ID: "room1", UserID: "owner1"}, nil).Twice()
	repo.On("Delete", ctx, "room1").Return(nil).Once()

	assert.ErrorIs(t, uc.Delete(ctx, "room1", "intruder"), ErrForbidden)
	assert.NoError(t, uc.Delete(ctx, "room1", "owner1"))
	repo.AssertExpectations(t)
}
