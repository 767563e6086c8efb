package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"techmart/internal/caching"
	"techmart/internal/common"
)

const otpTTL = 5 * time.Minute

// Mailer delivers outbound mail. The default implementation just logs;
// swapping in a real provider is a wiring change in main.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// OTPService issues and verifies the short numeric codes used by the
// forgot-password flow. Randomness and clock are injected so tests can pin
// both; OTP state lives in the cache under the recipient's email with a TTL.
type OTPService interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

type otpService struct {
	cacheSvc caching.CacheService
	mailer   Mailer
	randInt  func(n int) int
	now      func() time.Time
}

func NewOTPService(cacheSvc caching.CacheService, mailer Mailer, randInt func(n int) int, now func() time.Time) OTPService {
	if randInt == nil {
		randInt = rand.Intn
	}
	if now == nil {
		now = time.Now
	}
	return &otpService{cacheSvc: cacheSvc, mailer: mailer, randInt: randInt, now: now}
}

func otpKey(email string) string { return "techmart:otp:" + email }

// Issue generates a 4-digit code, stores its expiry alongside it and mails
// it to the user. A second Issue for the same email replaces the first.
func (s *otpService) Issue(ctx context.Context, email string) (string, error) {
	code := fmt.Sprintf("%04d", 1000+s.randInt(9000))
	expiresAt := s.now().Add(otpTTL).Unix()

	record := fmt.Sprintf("%s:%d", code, expiresAt)
	if err := s.cacheSvc.SetString(ctx, otpKey(email), record, otpTTL); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	subject := "Forgot Password OTP"
	body := fmt.Sprintf("Your OTP code is %s. It is valid for 5 minutes.", code)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		return "", fmt.Errorf("failed to send otp email: %w", err)
	}
	return code, nil
}

// Verify checks the code and consumes it on success.
func (s *otpService) Verify(ctx context.Context, email, code string) error {
	record, err := s.cacheSvc.GetString(ctx, otpKey(email))
	if err != nil {
		return err
	}
	if record == "" {
		return common.Validationf("otp expired or never issued")
	}

	var storedCode string
	var expiresAt int64
	if _, err := fmt.Sscanf(record, "%4s:%d", &storedCode, &expiresAt); err != nil {
		return fmt.Errorf("corrupt otp record: %w", err)
	}
	if storedCode != code {
		return common.Validationf("invalid otp")
	}
	if s.now().Unix() > expiresAt {
		return common.Validationf("otp has expired")
	}
	return s.cacheSvc.Delete(ctx, otpKey(email))
}
