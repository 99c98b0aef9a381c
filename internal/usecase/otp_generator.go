package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPGenerator produces a 6-digit numeric one-time code and its expiry.
type OTPGenerator interface {
	Generate() (code string, expiry time.Time, err error)
}

type otpGenerator struct {
	ttl time.Duration
}

func NewOTPGenerator(ttl time.Duration) OTPGenerator {
	return &otpGenerator{ttl: ttl}
}

func (g *otpGenerator) Generate() (string, time.Time, error) {
	// crypto/rand, not math/rand: the code guards a password reset.
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())
	return code, time.Now().Add(g.ttl), nil
}
