package repository

import (
	"context"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListActive(ctx context.Context) ([]*entity.Item, error)
	ListPublished(ctx context.Context) ([]*entity.Item, error)
	FindByCity(ctx context.Context, city string) ([]*entity.Item, error)
	FindByCategory(ctx context.Context, category string) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
