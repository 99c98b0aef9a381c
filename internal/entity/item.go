package entity

import "time"

type ItemAvailability string

const (
	ItemAvailable ItemAvailability = "available"
	ItemReserved  ItemAvailability = "reserved"
	ItemSold      ItemAvailability = "sold"
)

type Item struct {
	ID     string
	UserID string

	City     string
	Landmark string

	Title              string
	Category           string
	ConditionAgeMonths int

	Description string
	Tags        []string

	Price        float64
	IsNegotiable bool

	AvailabilityStatus ItemAvailability

	CoverImageURL string
	ImageURLs     []string

	Status        ListingStatus
	PublishedAt   *time.Time
	UnpublishedAt *time.Time

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
