package service

import "time"

// OTPGenerator produces the short-lived numeric codes emailed to an account
// to prove control of its address. Six decimal digits is a small space; it is
// acceptable only because of the five-minute expiry window. Verification
// attempts are not rate-limited here.
type OTPGenerator interface {
	// Generate returns a random 6-digit numeric code and its expiry time.
	Generate() (code string, expiresAt time.Time, err error)
}
