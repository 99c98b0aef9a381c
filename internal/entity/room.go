package entity

import "time"

type ListingStatus string

const (
	StatusDraft       ListingStatus = "draft"
	StatusPublished   ListingStatus = "published"
	StatusUnpublished ListingStatus = "unpublished"
)

type RoomType string

const (
	RoomTypePrivate RoomType = "private"
	RoomTypeShared  RoomType = "shared"
	RoomTypeEntire  RoomType = "entire"
)

type Room struct {
	ID     string
	UserID string

	City     string
	Landmark string

	RoomType RoomType
	SizeSqFt int
	Parking  bool

	Title       string
	Description string
	Amenities   []string

	RentAmount      float64
	SecurityDeposit float64

	CoverImageURL string
	ImageURLs     []string

	Status        ListingStatus
	PublishedAt   *time.Time
	UnpublishedAt *time.Time

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
