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

const itemCollectionName = "items"

type ItemMongoRepository struct {
	db *mongo.Database
}

func NewItemMongoRepository(client *mongo.Client, dbName string) *ItemMongoRepository {
	return &ItemMongoRepository{
		db: client.Database(dbName),
	}
}

type itemDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`

	City     string `bson:"city"`
	Landmark string `bson:"landmark,omitempty"`

	Title              string `bson:"title"`
	Category           string `bson:"category"`
	ConditionAgeMonths int    `bson:"condition_age_months,omitempty"`

	Description string   `bson:"description,omitempty"`
	Tags        []string `bson:"tags,omitempty"`

	Price        float64 `bson:"price"`
	IsNegotiable bool    `bson:"is_negotiable"`

	AvailabilityStatus string `bson:"availability_status"`

	CoverImageURL string   `bson:"cover_image_url,omitempty"`
	ImageURLs     []string `bson:"image_urls,omitempty"`

	Status        string              `bson:"status"`
	PublishedAt   *primitive.DateTime `bson:"published_at,omitempty"`
	UnpublishedAt *primitive.DateTime `bson:"unpublished_at,omitempty"`

	IsActive  bool               `bson:"is_active"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func toItemDocument(item *entity.Item) (*itemDocument, error) {
	doc := &itemDocument{
		UserID:             item.UserID,
		City:               item.City,
		Landmark:           item.Landmark,
		Title:              item.Title,
		Category:           item.Category,
		ConditionAgeMonths: item.ConditionAgeMonths,
		Description:        item.Description,
		Tags:               item.Tags,
		Price:              item.Price,
		IsNegotiable:       item.IsNegotiable,
		AvailabilityStatus: string(item.AvailabilityStatus),
		CoverImageURL:      item.CoverImageURL,
		ImageURLs:          item.ImageURLs,
		Status:             string(item.Status),
		IsActive:           item.IsActive,
		CreatedAt:          primitive.NewDateTimeFromTime(item.CreatedAt),
		UpdatedAt:          primitive.NewDateTimeFromTime(item.UpdatedAt),
	}
	if item.PublishedAt != nil {
		t := primitive.NewDateTimeFromTime(*item.PublishedAt)
		doc.PublishedAt = &t
	}
	if item.UnpublishedAt != nil {
		t := primitive.NewDateTimeFromTime(*item.UnpublishedAt)
		doc.UnpublishedAt = &t
	}
	if item.ID != "" {
		objID, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid item ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toItemEntity(doc *itemDocument) *entity.Item {
	item := &entity.Item{
		ID:                 doc.ID.Hex(),
		UserID:             doc.UserID,
		City:               doc.City,
		Landmark:           doc.Landmark,
		Title:              doc.Title,
		Category:           doc.Category,
		ConditionAgeMonths: doc.ConditionAgeMonths,
		Description:        doc.Description,
		Tags:               doc.Tags,
		Price:              doc.Price,
		IsNegotiable:       doc.IsNegotiable,
		AvailabilityStatus: entity.ItemAvailability(doc.AvailabilityStatus),
		CoverImageURL:      doc.CoverImageURL,
		ImageURLs:          doc.ImageURLs,
		Status:             entity.ListingStatus(doc.Status),
		IsActive:           doc.IsActive,
		CreatedAt:          doc.CreatedAt.Time(),
		UpdatedAt:          doc.UpdatedAt.Time(),
	}
	if doc.PublishedAt != nil {
		t := doc.PublishedAt.Time()
		item.PublishedAt = &t
	}
	if doc.UnpublishedAt != nil {
		t := doc.UnpublishedAt.Time()
		item.UnpublishedAt = &t
	}
	return item
}

func (r *ItemMongoRepository) Create(ctx context.Context, item *entity.Item) (string, error) {
	doc, err := toItemDocument(item)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(itemCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create item in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ItemMongoRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc itemDocument
	err = r.db.Collection(itemCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item by id from mongo: %w", err)
	}
	return toItemEntity(&doc), nil
}

func (r *ItemMongoRepository) ListActive(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

func (r *ItemMongoRepository) ListPublished(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, bson.M{"is_active": true, "status": string(entity.StatusPublished)})
}

func (r *ItemMongoRepository) FindByCity(ctx context.Context, city string) ([]*entity.Item, error) {
	filter := bson.M{
		"is_active": true,
		"status":    string(entity.StatusPublished),
		"city":      bson.M{"$regex": city, "$options": "i"},
	}
	return r.list(ctx, filter)
}

func (r *ItemMongoRepository) FindByCategory(ctx context.Context, category string) ([]*entity.Item, error) {
	filter := bson.M{
		"is_active": true,
		"status":    string(entity.StatusPublished),
		"category":  bson.M{"$regex": category, "$options": "i"},
	}
	return r.list(ctx, filter)
}

func (r *ItemMongoRepository) list(ctx context.Context, filter bson.M) ([]*entity.Item, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(itemCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list items from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode item list from mongo: %w", err)
	}

	items := make([]*entity.Item, len(docs))
	for i, doc := range docs {
		items[i] = toItemEntity(&doc)
	}
	return items, nil
}

func (r *ItemMongoRepository) Update(ctx context.Context, item *entity.Item) error {
	doc, err := toItemDocument(item)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("item ID is required for update")
	}

	set := bson.M{
		"city":                 doc.City,
		"landmark":             doc.Landmark,
		"title":                doc.Title,
		"category":             doc.Category,
		"condition_age_months": doc.ConditionAgeMonths,
		"description":          doc.Description,
		"tags":                 doc.Tags,
		"price":                doc.Price,
		"is_negotiable":        doc.IsNegotiable,
		"availability_status":  doc.AvailabilityStatus,
		"cover_image_url":      doc.CoverImageURL,
		"image_urls":           doc.ImageURLs,
		"status":               doc.Status,
		"updated_at":           primitive.NewDateTimeFromTime(time.Now()),
	}
	if doc.PublishedAt != nil {
		set["published_at"] = *doc.PublishedAt
	}
	if doc.UnpublishedAt != nil {
		set["unpublished_at"] = *doc.UnpublishedAt
	}

	res, err := r.db.Collection(itemCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update item in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemMongoRepository) Deactivate(ctx context.Context, id string) error {
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

	res, err := r.db.Collection(itemCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate item in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(itemCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete item from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
