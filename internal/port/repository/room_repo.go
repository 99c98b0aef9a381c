package repository

import (
	"context"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	ListActive(ctx context.Context) ([]*entity.Room, error)
	ListPublished(ctx context.Context) ([]*entity.Room, error)
	FindByCity(ctx context.Context, city string) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
