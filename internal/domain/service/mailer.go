package service

import "context"

// Mailer delivers the transactional email the authentication flows depend on.
// Delivery is awaited so a failure aborts the operation that triggered it;
// there is no retry here.
type Mailer interface {
	// SendOTP delivers a verification code to the address. The template and
	// transport are implementation concerns.
	SendOTP(ctx context.Context, to, code string) error
}
