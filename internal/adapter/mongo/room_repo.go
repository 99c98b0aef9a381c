package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const roomCollectionName = "rooms"

type RoomMongoRepository struct {
	db *mongo.Database
}

func NewRoomMongoRepository(client *mongo.Client, dbName string) *RoomMongoRepository {
	return &RoomMongoRepository{
		db: client.Database(dbName),
	}
}

type roomDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`

	City     string `bson:"city"`
	Landmark string `bson:"landmark,omitempty"`

	RoomType string `bson:"room_type"`
	SizeSqFt int    `bson:"size_sqft,omitempty"`
	Parking  bool   `bson:"parking"`

	Title       string   `bson:"title"`
	Description string   `bson:"description,omitempty"`
	Amenities   []string `bson:"amenities,omitempty"`

	RentAmount      float64 `bson:"rent_amount"`
	SecurityDeposit float64 `bson:"security_deposit,omitempty"`

	CoverImageURL string   `bson:"cover_image_url,omitempty"`
	ImageURLs     []string `bson:"image_urls,omitempty"`

	Status        string              `bson:"status"`
	PublishedAt   *primitive.DateTime `bson:"published_at,omitempty"`
	UnpublishedAt *primitive.DateTime `bson:"unpublished_at,omitempty"`

	IsActive  bool               `bson:"is_active"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func toRoomDocument(room *entity.Room) (*roomDocument, error) {
	doc := &roomDocument{
		UserID:          room.UserID,
		City:            room.City,
		Landmark:        room.Landmark,
		RoomType:        string(room.RoomType),
		SizeSqFt:        room.SizeSqFt,
		Parking:         room.Parking,
		Title:           room.Title,
		Description:     room.Description,
		Amenities:       room.Amenities,
		RentAmount:      room.RentAmount,
		SecurityDeposit: room.SecurityDeposit,
		CoverImageURL:   room.CoverImageURL,
		ImageURLs:       room.ImageURLs,
		Status:          string(room.Status),
		IsActive:        room.IsActive,
		CreatedAt:       primitive.NewDateTimeFromTime(room.CreatedAt),
		UpdatedAt:       primitive.NewDateTimeFromTime(room.UpdatedAt),
	}
	if room.PublishedAt != nil {
		t := primitive.NewDateTimeFromTime(*room.PublishedAt)
		doc.PublishedAt = &t
	}
	if room.UnpublishedAt != nil {
		t := primitive.NewDateTimeFromTime(*room.UnpublishedAt)
		doc.UnpublishedAt = &t
	}
	if room.ID != "" {
		objID, err := primitive.ObjectIDFromHex(room.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid room ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toRoomEntity(doc *roomDocument) *entity.Room {
	room := &entity.Room{
		ID:              doc.ID.Hex(),
		UserID:          doc.UserID,
		City:            doc.City,
		Landmark:        doc.Landmark,
		RoomType:        entity.RoomType(doc.RoomType),
		SizeSqFt:        doc.SizeSqFt,
		Parking:         doc.Parking,
		Title:           doc.Title,
		Description:     doc.Description,
		Amenities:       doc.Amenities,
		RentAmount:      doc.RentAmount,
		SecurityDeposit: doc.SecurityDeposit,
		CoverImageURL:   doc.CoverImageURL,
		ImageURLs:       doc.ImageURLs,
		Status:          entity.ListingStatus(doc.Status),
		IsActive:        doc.IsActive,
		CreatedAt:       doc.CreatedAt.Time(),
		UpdatedAt:       doc.UpdatedAt.Time(),
	}
	if doc.PublishedAt != nil {
		t := doc.PublishedAt.Time()
		room.PublishedAt = &t
	}
	if doc.UnpublishedAt != nil {
		t := doc.UnpublishedAt.Time()
		room.UnpublishedAt = &t
	}
	return room
}

func (r *RoomMongoRepository) Create(ctx context.Context, room *entity.Room) (string, error) {
	doc, err := toRoomDocument(room)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(roomCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create room in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *RoomMongoRepository) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc roomDocument
	err = r.db.Collection(roomCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room by id from mongo: %w", err)
	}
	return toRoomEntity(&doc), nil
}

func (r *RoomMongoRepository) ListActive(ctx context.Context) ([]*entity.Room, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

func (r *RoomMongoRepository) ListPublished(ctx context.Context) ([]*entity.Room, error) {
	return r.list(ctx, bson.M{"is_active": true, "status": string(entity.StatusPublished)})
}

func (r *RoomMongoRepository) FindByCity(ctx context.Context, city string) ([]*entity.Room, error) {
	filter := bson.M{
		"is_active": true,
		"status":    string(entity.StatusPublished),
		"city":      bson.M{"$regex": city, "$options": "i"},
	}
	return r.list(ctx, filter)
}

func (r *RoomMongoRepository) list(ctx context.Context, filter bson.M) ([]*entity.Room, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(roomCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roomDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode room list from mongo: %w", err)
	}

	rooms := make([]*entity.Room, len(docs))
	for i, doc := range docs {
		rooms[i] = toRoomEntity(&doc)
	}
	return rooms, nil
}

func (r *RoomMongoRepository) Update(ctx context.Context, room *entity.Room) error {
	doc, err := toRoomDocument(room)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("room ID is required for update")
	}

	set := bson.M{
		"city":             doc.City,
		"landmark":         doc.Landmark,
		"room_type":        doc.RoomType,
		"size_sqft":        doc.SizeSqFt,
		"parking":          doc.Parking,
		"title":            doc.Title,
		"description":      doc.Description,
		"amenities":        doc.Amenities,
		"rent_amount":      doc.RentAmount,
		"security_deposit": doc.SecurityDeposit,
		"cover_image_url":  doc.CoverImageURL,
		"image_urls":       doc.ImageURLs,
		"status":           doc.Status,
		"updated_at":       primitive.NewDateTimeFromTime(time.Now()),
	}
	if doc.PublishedAt != nil {
		set["published_at"] = *doc.PublishedAt
	}
	if doc.UnpublishedAt != nil {
		set["unpublished_at"] = *doc.UnpublishedAt
	}

	res, err := r.db.Collection(roomCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update room in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomMongoRepository) Deactivate(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	res, err := r.db.Collection(roomCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate room in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(roomCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete room from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
