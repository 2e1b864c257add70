// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"trailhub/config"
	"trailhub/internal/domain/service"
)

// otpSpace is the size of the 6-digit code space.
var otpSpace = big.NewInt(1000000)

// otpGenerator produces 6-digit numeric codes from crypto/rand with a fixed
// expiry window. The code space is small; the short window is the defense.
type otpGenerator struct {
	ttl time.Duration
	now func() time.Time
}

// NewOTPGenerator is the constructor for otpGenerator.
func NewOTPGenerator(cfg *config.Config) service.OTPGenerator {
	return &otpGenerator{
		ttl: cfg.Auth.OTPTTL,
		now: time.Now,
	}
}

// Generate returns a zero-padded 6-digit code and its expiry time.
func (g *otpGenerator) Generate() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to read random bytes for OTP")
	}

	return fmt.Sprintf("%06d", n.Int64()), g.now().Add(g.ttl), nil
}
