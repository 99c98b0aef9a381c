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

type ItemUsecase struct {
	items     repository.ItemRepository
	photos    storage.PhotoStorage
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewItemUsecase(
	items repository.ItemRepository,
	photos storage.PhotoStorage,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *ItemUsecase {
	return &ItemUsecase{
		items:     items,
		photos:    photos,
		publisher: publisher,
		logger:    logger.Named("ItemUsecase"),
	}
}

type CreateItemInput struct {
	City               string
	Landmark           string
	Title              string
	Category           string
	ConditionAgeMonths int
	Description        string
	Tags               []string
	Price              float64
	IsNegotiable       bool
}

func (u *ItemUsecase) Create(ctx context.Context, userID string, in CreateItemInput) (*entity.Item, error) {
	now := time.Now()
	item := &entity.Item{
		UserID:             userID,
		City:               in.City,
		Landmark:           in.Landmark,
		Title:              in.Title,
		Category:           in.Category,
		ConditionAgeMonths: in.ConditionAgeMonths,
		Description:        in.Description,
		Tags:               in.Tags,
		Price:              in.Price,
		IsNegotiable:       in.IsNegotiable,
		AvailabilityStatus: entity.ItemAvailable,
		ImageURLs:          []string{},
		Status:             entity.StatusDraft,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	id, err := u.items.Create(ctx, item)
	if err != nil {
		u.logger.Error("failed to create item", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	item.ID = id
	u.logger.Info("item created", zap.String("itemID", id), zap.String("userID", userID))
	return item, nil
}

func (u *ItemUsecase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return u.items.GetByID(ctx, id)
}

func (u *ItemUsecase) ListActive(ctx context.Context) ([]*entity.Item, error) {
	return u.items.ListActive(ctx)
}

func (u *ItemUsecase) ListPublished(ctx context.Context) ([]*entity.Item, error) {
	return u.items.ListPublished(ctx)
}

func (u *ItemUsecase) FindByCity(ctx context.Context, city string) ([]*entity.Item, error) {
	return u.items.FindByCity(ctx, city)
}

func (u *ItemUsecase) FindByCategory(ctx context.Context, category string) ([]*entity.Item, error) {
	return u.items.FindByCategory(ctx, category)
}

type UpdateItemInput struct {
	City               string
	Landmark           string
	Title              string
	Category           string
	ConditionAgeMonths int
	Description        string
	Tags               []string
	Price              float64
	IsNegotiable       *bool
	AvailabilityStatus entity.ItemAvailability
}

func (u *ItemUsecase) Update(ctx context.Context, id, userID string, in UpdateItemInput) (*entity.Item, error) {
	item, err := u.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.City != "" {
		item.City = in.City
	}
	if in.Landmark != "" {
		item.Landmark = in.Landmark
	}
	if in.Title != "" {
		item.Title = in.Title
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.ConditionAgeMonths > 0 {
		item.ConditionAgeMonths = in.ConditionAgeMonths
	}
	if in.Description != "" {
		item.Description = in.Description
	}
	if in.Tags != nil {
		item.Tags = in.Tags
	}
	if in.Price > 0 {
		item.Price = in.Price
	}
	if in.IsNegotiable != nil {
		item.IsNegotiable = *in.IsNegotiable
	}
	if in.AvailabilityStatus != "" {
		item.AvailabilityStatus = in.AvailabilityStatus
	}
	item.UpdatedAt = time.Now()

	if err := u.items.Update(ctx, item); err != nil {
		u.logger.Error("failed to update item", zap.String("itemID", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (u *ItemUsecase) Publish(ctx context.Context, id, userID string) (*entity.Item, error) {
	item, err := u.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.Status = entity.StatusPublished
	item.PublishedAt = &now
	item.UpdatedAt = now
	if err := u.items.Update(ctx, item); err != nil {
		return nil, err
	}

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, messaging.SubjectItemPublished, map[string]interface{}{
			"item_id":  item.ID,
			"category": item.Category,
			"price":    item.Price,
		}); err != nil {
			u.logger.Warn("failed to publish item.published event", zap.Error(err))
		}
	}
	u.logger.Info("item published", zap.String("itemID", id))
	return item, nil
}

func (u *ItemUsecase) Unpublish(ctx context.Context, id, userID string) (*entity.Item, error) {
	item, err := u.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.Status = entity.StatusUnpublished
	item.UnpublishedAt = &now
	item.UpdatedAt = now
	if err := u.items.Update(ctx, item); err != nil {
		return nil, err
	}
	u.logger.Info("item unpublished", zap.String("itemID", id))
	return item, nil
}

func (u *ItemUsecase) UploadPhoto(ctx context.Context, id, userID, fileName string, data []byte) (string, error) {
	item, err := u.ownedItem(ctx, id, userID)
	if err != nil {
		return "", err
	}

	url, err := u.photos.Upload(ctx, fileName, data)
	if err != nil {
		u.logger.Error("failed to upload item photo", zap.String("itemID", id), zap.Error(err))
		return "", err
	}

	if item.CoverImageURL == "" {
		item.CoverImageURL = url
	}
	item.ImageURLs = append(item.ImageURLs, url)
	item.UpdatedAt = time.Now()
	if err := u.items.Update(ctx, item); err != nil {
		return "", err
	}
	return url, nil
}

func (u *ItemUsecase) Deactivate(ctx context.Context, id, userID string) error {
	if _, err := u.ownedItem(ctx, id, userID); err != nil {
		return err
	}
	return u.items.Deactivate(ctx, id)
}

func (u *ItemUsecase) Delete(ctx context.Context, id, userID string) error {
	if _, err := u.ownedItem(ctx, id, userID); err != nil {
		return err
	}
	return u.items.Delete(ctx, id)
}

func (u *ItemUsecase) ownedItem(ctx context.Context, id, userID string) (*entity.Item, error) {
	item, err := u.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		u.logger.Warn("forbidden item access", zap.String("itemID", id),
			zap.String("ownerID", item.UserID), zap.String("callerID", userID))
		return nil, ErrForbidden
	}
	return item, nil
}
