package sms

import "context"

// Sender delivers short text messages to a contact number. The reset OTP
// only ever leaves the service through this port, never through an HTTP
// response body.
type Sender interface {
	Send(ctx context.Context, toContactNumber, message string) error
}
