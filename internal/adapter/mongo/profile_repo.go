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

const profileCollectionName = "profiles"

type ProfileMongoRepository struct {
	db *mongo.Database
}

// NewProfileMongoRepository ensures the unique contact_number index before
// returning; duplicate registrations then fail at the storage layer no matter
// how many requests race.
func NewProfileMongoRepository(ctx context.Context, client *mongo.Client, dbName string) (*ProfileMongoRepository, error) {
	r := &ProfileMongoRepository{
		db: client.Database(dbName),
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "contact_number", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_contact_number_unique"),
	}
	if _, err := r.db.Collection(profileCollectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return r, nil
}

type profileDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	ContactNumber  string              `bson:"contact_number"`
	Password       string              `bson:"password"`
	ResetOTP       string              `bson:"reset_otp,omitempty"`
	ResetOTPExpiry *primitive.DateTime `bson:"reset_otp_expiry,omitempty"`

	FullName      string `bson:"full_name,omitempty"`
	Age           int    `bson:"age,omitempty"`
	Gender        string `bson:"gender,omitempty"`
	ProfileType   string `bson:"profile_type,omitempty"`
	MaritalStatus string `bson:"marital_status,omitempty"`
	ProfilePicURL string `bson:"profile_pic_url,omitempty"`

	Introduction string   `bson:"introduction,omitempty"`
	Personality  string   `bson:"personality,omitempty"`
	Interests    []string `bson:"interests,omitempty"`

	Hometown string `bson:"hometown,omitempty"`
	City     string `bson:"city,omitempty"`
	Address  string `bson:"address,omitempty"`

	FoodPreference string `bson:"food_preference,omitempty"`
	Drinking       string `bson:"drinking,omitempty"`
	Smoking        string `bson:"smoking,omitempty"`
	Pets           string `bson:"pets,omitempty"`
	RoomCleaning   string `bson:"room_cleaning,omitempty"`
	WorkSchedule   string `bson:"work_schedule,omitempty"`

	IsActive  bool               `bson:"is_active"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func toProfileDocument(p *entity.Profile) (*profileDocument, error) {
	doc := &profileDocument{
		ContactNumber:  p.ContactNumber,
		Password:       p.Password,
		ResetOTP:       p.ResetOTP,
		FullName:       p.FullName,
		Age:            p.Age,
		Gender:         p.Gender,
		ProfileType:    p.ProfileType,
		MaritalStatus:  p.MaritalStatus,
		ProfilePicURL:  p.ProfilePicURL,
		Introduction:   p.Introduction,
		Personality:    p.Personality,
		Interests:      p.Interests,
		Hometown:       p.Hometown,
		City:           p.City,
		Address:        p.Address,
		FoodPreference: p.FoodPreference,
		Drinking:       p.Drinking,
		Smoking:        p.Smoking,
		Pets:           p.Pets,
		RoomCleaning:   p.RoomCleaning,
		WorkSchedule:   p.WorkSchedule,
		IsActive:       p.IsActive,
		CreatedAt:      primitive.NewDateTimeFromTime(p.CreatedAt),
		UpdatedAt:      primitive.NewDateTimeFromTime(p.UpdatedAt),
	}
	if p.ResetOTPExpiry != nil {
		expiry := primitive.NewDateTimeFromTime(*p.ResetOTPExpiry)
		doc.ResetOTPExpiry = &expiry
	}
	if p.ID != "" {
		objID, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid profile ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toProfileEntity(doc *profileDocument) *entity.Profile {
	p := &entity.Profile{
		ID:             doc.ID.Hex(),
		ContactNumber:  doc.ContactNumber,
		Password:       doc.Password,
		ResetOTP:       doc.ResetOTP,
		FullName:       doc.FullName,
		Age:            doc.Age,
		Gender:         doc.Gender,
		ProfileType:    doc.ProfileType,
		MaritalStatus:  doc.MaritalStatus,
		ProfilePicURL:  doc.ProfilePicURL,
		Introduction:   doc.Introduction,
		Personality:    doc.Personality,
		Interests:      doc.Interests,
		Hometown:       doc.Hometown,
		City:           doc.City,
		Address:        doc.Address,
		FoodPreference: doc.FoodPreference,
		Drinking:       doc.Drinking,
		Smoking:        doc.Smoking,
		Pets:           doc.Pets,
		RoomCleaning:   doc.RoomCleaning,
		WorkSchedule:   doc.WorkSchedule,
		IsActive:       doc.IsActive,
		CreatedAt:      doc.CreatedAt.Time(),
		UpdatedAt:      doc.UpdatedAt.Time(),
	}
	if doc.ResetOTPExpiry != nil {
		expiry := doc.ResetOTPExpiry.Time()
		p.ResetOTPExpiry = &expiry
	}
	return p
}

func (r *ProfileMongoRepository) Create(ctx context.Context, profile *entity.Profile) (string, error) {
	doc, err := toProfileDocument(profile)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(profileCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateContactNumber
		}
		return "", fmt.Errorf("failed to create profile in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ProfileMongoRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc profileDocument
	err = r.db.Collection(profileCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by id from mongo: %w", err)
	}
	return toProfileEntity(&doc), nil
}

func (r *ProfileMongoRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*entity.Profile, error) {
	var doc profileDocument
	err := r.db.Collection(profileCollectionName).FindOne(ctx, bson.M{"contact_number": contactNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by contact number from mongo: %w", err)
	}
	return toProfileEntity(&doc), nil
}

func (r *ProfileMongoRepository) ListActive(ctx context.Context) ([]*entity.Profile, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(profileCollectionName).Find(ctx, bson.M{"is_active": true}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []profileDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode profile list from mongo: %w", err)
	}

	profiles := make([]*entity.Profile, len(docs))
	for i, doc := range docs {
		profiles[i] = toProfileEntity(&doc)
	}
	return profiles, nil
}

func (r *ProfileMongoRepository) Update(ctx context.Context, profile *entity.Profile) error {
	doc, err := toProfileDocument(profile)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("profile ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"full_name":       doc.FullName,
			"age":             doc.Age,
			"gender":          doc.Gender,
			"marital_status":  doc.MaritalStatus,
			"profile_pic_url": doc.ProfilePicURL,
			"introduction":    doc.Introduction,
			"personality":     doc.Personality,
			"interests":       doc.Interests,
			"hometown":        doc.Hometown,
			"city":            doc.City,
			"address":         doc.Address,
			"food_preference": doc.FoodPreference,
			"drinking":        doc.Drinking,
			"smoking":         doc.Smoking,
			"pets":            doc.Pets,
			"room_cleaning":   doc.RoomCleaning,
			"work_schedule":   doc.WorkSchedule,
			"updated_at":      primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	res, err := r.db.Collection(profileCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update profile in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileMongoRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	res, err := r.db.Collection(profileCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update password in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileMongoRepository) SetResetOTP(ctx context.Context, id string, otpHash string, expiry time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"reset_otp":        otpHash,
			"reset_otp_expiry": primitive.NewDateTimeFromTime(expiry),
			"updated_at":       primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	res, err := r.db.Collection(profileCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to set reset OTP in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ResetPassword stores the new hash and drops both reset OTP fields in one
// UpdateOne, so a crash can never leave a consumed OTP behind.
func (r *ProfileMongoRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": primitive.NewDateTimeFromTime(time.Now()),
		},
		"$unset": bson.M{
			"reset_otp":        "",
			"reset_otp_expiry": "",
		},
	}

	res, err := r.db.Collection(profileCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to reset password in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileMongoRepository) Deactivate(ctx context.Context, id string) error {
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

	res, err := r.db.Collection(profileCollectionName).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate profile in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(profileCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete profile from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
