package usecase

import (
	"context"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/messaging"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/storage"
	"go.uber.org/zap"
)

type RoomUsecase struct {
	rooms     repository.RoomRepository
	photos    storage.PhotoStorage
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewRoomUsecase(
	rooms repository.RoomRepository,
	photos storage.PhotoStorage,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *RoomUsecase {
	return &RoomUsecase{
		rooms:     rooms,
		photos:    photos,
		publisher: publisher,
		logger:    logger.Named("RoomUsecase"),
	}
}

type CreateRoomInput struct {
	City            string
	Landmark        string
	RoomType        entity.RoomType
	SizeSqFt        int
	Parking         bool
	Title           string
	Description     string
	Amenities       []string
	RentAmount      float64
	SecurityDeposit float64
}

// Create persists a new room listing in draft status, owned by the caller.
func (u *RoomUsecase) Create(ctx context.Context, userID string, in CreateRoomInput) (*entity.Room, error) {
	now := time.Now()
	room := &entity.Room{
		UserID:          userID,
		City:            in.City,
		Landmark:        in.Landmark,
		RoomType:        in.RoomType,
		SizeSqFt:        in.SizeSqFt,
		Parking:         in.Parking,
		Title:           in.Title,
		Description:     in.Description,
		Amenities:       in.Amenities,
		RentAmount:      in.RentAmount,
		SecurityDeposit: in.SecurityDeposit,
		ImageURLs:       []string{},
		Status:          entity.StatusDraft,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := u.rooms.Create(ctx, room)
	if err != nil {
		u.logger.Error("failed to create room", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	room.ID = id
	u.logger.Info("room created", zap.String("roomID", id), zap.String("userID", userID))
	return room, nil
}

func (u *RoomUsecase) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return u.rooms.GetByID(ctx, id)
}

func (u *RoomUsecase) ListActive(ctx context.Context) ([]*entity.Room, error) {
	return u.rooms.ListActive(ctx)
}

func (u *RoomUsecase) ListPublished(ctx context.Context) ([]*entity.Room, error) {
	return u.rooms.ListPublished(ctx)
}

func (u *RoomUsecase) FindByCity(ctx context.Context, city string) ([]*entity.Room, error) {
	return u.rooms.FindByCity(ctx, city)
}

type UpdateRoomInput struct {
	City            string
	Landmark        string
	RoomType        entity.RoomType
	SizeSqFt        int
	Parking         *bool
	Title           string
	Description     string
	Amenities       []string
	RentAmount      float64
	SecurityDeposit float64
}

func (u *RoomUsecase) Update(ctx context.Context, id, userID string, in UpdateRoomInput) (*entity.Room, error) {
	room, err := u.ownedRoom(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.City != "" {
		room.City = in.City
	}
	if in.Landmark != "" {
		room.Landmark = in.Landmark
	}
	if in.RoomType != "" {
		room.RoomType = in.RoomType
	}
	if in.SizeSqFt > 0 {
		room.SizeSqFt = in.SizeSqFt
	}
	if in.Parking != nil {
		room.Parking = *in.Parking
	}
	if in.Title != "" {
		room.Title = in.Title
	}
	if in.Description != "" {
		room.Description = in.Description
	}
	if in.Amenities != nil {
		room.Amenities = in.Amenities
	}
	if in.RentAmount > 0 {
		room.RentAmount = in.RentAmount
	}
	if in.SecurityDeposit > 0 {
		room.SecurityDeposit = in.SecurityDeposit
	}
	room.UpdatedAt = time.Now()

	if err := u.rooms.Update(ctx, room); err != nil {
		u.logger.Error("failed to update room", zap.String("roomID", id), zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (u *RoomUsecase) Publish(ctx context.Context, id, userID string) (*entity.Room, error) {
	room, err := u.ownedRoom(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room.Status = entity.StatusPublished
	room.PublishedAt = &now
	room.UpdatedAt = now
	if err := u.rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, messaging.SubjectRoomPublished, map[string]interface{}{
			"room_id": room.ID,
			"city":    room.City,
			"rent":    room.RentAmount,
		}); err != nil {
			u.logger.Warn("failed to publish room.published event", zap.Error(err))
		}
	}
	u.logger.Info("room published", zap.String("roomID", id))
	return room, nil
}

func (u *RoomUsecase) Unpublish(ctx context.Context, id, userID string) (*entity.Room, error) {
	room, err := u.ownedRoom(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room.Status = entity.StatusUnpublished
	room.UnpublishedAt = &now
	room.UpdatedAt = now
	if err := u.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	u.logger.Info("room unpublished", zap.String("roomID", id))
	return room, nil
}

// UploadPhoto stores the photo and appends its URL to the room's gallery;
// the first upload becomes the cover image.
func (u *RoomUsecase) UploadPhoto(ctx context.Context, id, userID, fileName string, data []byte) (string, error) {
	room, err := u.ownedRoom(ctx, id, userID)
	if err != nil {
		return "", err
	}

	url, err := u.photos.Upload(ctx, fileName, data)
	if err != nil {
		u.logger.Error("failed to upload room photo", zap.String("roomID", id), zap.Error(err))
		return "", err
	}

	if room.CoverImageURL == "" {
		room.CoverImageURL = url
	}
	room.ImageURLs = append(room.ImageURLs, url)
	room.UpdatedAt = time.Now()
	if err := u.rooms.Update(ctx, room); err != nil {
		return "", err
	}
	return url, nil
}

func (u *RoomUsecase) Deactivate(ctx context.Context, id, userID string) error {
	if _, err := u.ownedRoom(ctx, id, userID); err != nil {
		return err
	}
	return u.rooms.Deactivate(ctx, id)
}

func (u *RoomUsecase) Delete(ctx context.Context, id, userID string) error {
	if _, err := u.ownedRoom(ctx, id, userID); err != nil {
		return err
	}
	return u.rooms.Delete(ctx, id)
}

func (u *RoomUsecase) ownedRoom(ctx context.Context, id, userID string) (*entity.Room, error) {
	room, err := u.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.UserID != userID {
		u.logger.Warn("forbidden room access", zap.String("roomID", id),
			zap.String("ownerID", room.UserID), zap.String("callerID", userID))
		return nil, ErrForbidden
	}
	return room, nil
}
