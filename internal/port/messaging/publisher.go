package messaging

import "context"

// Publisher emits domain events for other services (notifications,
// analytics). Payloads are JSON-encoded by the adapter.
type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

// Subjects published by this service.
const (
	SubjectProfileRegistered      = "rommie.profile.registered"
	SubjectProfileDeactivated     = "rommie.profile.deactivated"
	SubjectPasswordResetRequested = "rommie.profile.password_reset_requested"
	SubjectRoomPublished          = "rommie.room.published"
	SubjectItemPublished          = "rommie.item.published"
)
