package mail

import "fmt"

const otpEmailSubject = "Your TrailHub verification code"

// OTPEmail renders the verification-code email body.
func OTPEmail(code string) string {
	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Your verification code</h2>
  <p>Use the code below to verify your email address. It expires in 5 minutes.</p>
  <p style="font-size:32px;letter-spacing:8px;font-weight:bold">%s</p>
  <p>If you did not request this code, you can ignore this email.</p>
</div>`, code)
}
