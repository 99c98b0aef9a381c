package entity

import "time"

// Profile is both the marketplace profile and the credential record:
// login is keyed by the unique contact number.
type Profile struct {
	ID            string
	ContactNumber string
	// Password holds the bcrypt hash, never the plaintext.
	Password       string
	ResetOTP       string     // bcrypt hash of the pending reset OTP, empty when no reset is pending
	ResetOTPExpiry *time.Time // set and cleared together with ResetOTP

	FullName      string
	Age           int
	Gender        string
	ProfileType   string
	MaritalStatus string
	ProfilePicURL string

	Introduction string
	Personality  string
	Interests    []string

	Hometown string
	City     string
	Address  string

	FoodPreference string
	Drinking       string
	Smoking        string
	Pets           string
	RoomCleaning   string
	WorkSchedule   string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingReset reports whether a password reset OTP is stored on the
// profile. Expiry is checked by the caller; stale fields are only cleared
// by a successful reset or overwritten by a new request.
func (p *Profile) HasPendingReset() bool {
	return p.ResetOTP != "" && p.ResetOTPExpiry != nil
}
