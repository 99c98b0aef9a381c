package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRoomRepo struct {
	repository.RoomRepository

	active    []*entity.Room
	published []*entity.Room
}

func (s *stubRoomRepo) ListActive(ctx context.Context) ([]*entity.Room, error) {
	return s.active, nil
}

func (s *stubRoomRepo) ListPublished(ctx context.Context) ([]*entity.Room, error) {
	return s.published, nil
}

type stubItemRepo struct {
	repository.ItemRepository

	active    []*entity.Item
	published []*entity.Item
}

func (s *stubItemRepo) ListActive(ctx context.Context) ([]*entity.Item, error) {
	return s.active, nil
}

func (s *stubItemRepo) ListPublished(ctx context.Context) ([]*entity.Item, error) {
	return s.published, nil
}

func TestRoomHandlerList(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	draft := &entity.Room{ID: "room1", UserID: "u1", City: "Pune", Title: "Draft room", Status: entity.StatusDraft, IsActive: true}
	published := &entity.Room{ID: "room2", UserID: "u1", City: "Pune", Title: "Published room", Status: entity.StatusPublished, IsActive: true}

	repo := &stubRoomRepo{
		active:    []*entity.Room{draft, published},
		published: []*entity.Room{published},
	}
	handler := NewRoomHandler(
		usecase.NewRoomUsecase(repo, nil, nil, logger),
		metrics.NewMetricsManager("test"),
		logger,
	)

	listRooms := func(t *testing.T, target string) []roomResponse {
		rec := httptest.NewRecorder()
		handler.List(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []roomResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	t.Run("DefaultServesPublishedOnly", func(t *testing.T) {
		resp := listRooms(t, "/api/rooms")
		require.Len(t, resp, 1)
		assert.Equal(t, "room2", resp[0].ID)
	})

	t.Run("StatusActiveIncludesDrafts", func(t *testing.T) {
		resp := listRooms(t, "/api/rooms?status=active")
		require.Len(t, resp, 2)
		assert.Equal(t, "room1", resp[0].ID)
		assert.Equal(t, "room2", resp[1].ID)
	})
}

func TestItemHandlerList(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	draft := &entity.Item{ID: "item1", UserID: "u1", Title: "Draft item", Status: entity.StatusDraft, IsActive: true}
	published := &entity.Item{ID: "item2", UserID: "u1", Title: "Published item", Status: entity.StatusPublished, IsActive: true}

	repo := &stubItemRepo{
		active:    []*entity.Item{draft, published},
		published: []*entity.Item{published},
	}
	handler := NewItemHandler(
		usecase.NewItemUsecase(repo, nil, nil, logger),
		metrics.NewMetricsManager("test"),
		logger,
	)

	listItems := func(t *testing.T, target string) []itemResponse {
		rec := httptest.NewRecorder()
		handler.List(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []itemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	t.Run("DefaultServesPublishedOnly", func(t *testing.T) {
		resp := listItems(t, "/api/items")
		require.Len(t, resp, 1)
		assert.Equal(t, "item2", resp[0].ID)
	})

	t.Run("StatusActiveIncludesDrafts", func(t *testing.T) {
		resp := listItems(t, "/api/items?status=active")
		require.Len(t, resp, 2)
		assert.Equal(t, "item1", resp[0].ID)
		assert.Equal(t, "item2", resp[1].ID)
	})
}
