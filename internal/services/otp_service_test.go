package services

import (
	"context"
	"testing"
	"time"

	"techmart/internal/common"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestOTPIssue_CodeAndMail(t *testing.T) {
	cache := newStubCache()
	mailer := &recordingMailer{}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	svc := NewOTPService(cache, mailer, func(n int) int { return 2345 }, fixedClock(now))

	code, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "3345", code)
	assert.Equal(t, []string{"user@example.com"}, mailer.recipients)
	assert.Contains(t, mailer.bodies[0], "3345")
}

func TestOTPVerify_SuccessConsumesCode(t *testing.T) {
	cache := newStubCache()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := NewOTPService(cache, &recordingMailer{}, func(n int) int { return 0 }, fixedClock(now))

	code, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.NoError(t, svc.Verify(context.Background(), "user@example.com", code))

	// Single use: a second verification of the same code fails.
	err = svc.Verify(context.Background(), "user@example.com", code)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestOTPVerify_WrongCode(t *testing.T) {
	cache := newStubCache()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := NewOTPService(cache, &recordingMailer{}, func(n int) int { return 2345 }, fixedClock(now))

	_, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)

	err = svc.Verify(context.Background(), "user@example.com", "9999")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestOTPVerify_Expired(t *testing.T) {
	cache := newStubCache()
	issued := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := issued
	svc := NewOTPService(cache, &recordingMailer{}, func(n int) int { return 2345 }, func() time.Time { return clock })

	code, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)

	clock = issued.Add(6 * time.Minute)
	err = svc.Verify(context.Background(), "user@example.com", code)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestOTPVerify_NeverIssued(t *testing.T) {
	svc := NewOTPService(newStubCache(), &recordingMailer{}, nil, nil)

	err := svc.Verify(context.Background(), "nobody@example.com", "1234")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestOTPIssue_ReplacesPreviousCode(t *testing.T) {
	cache := newStubCache()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	codes := []int{1111, 2222}
	svc := NewOTPService(cache, &recordingMailer{}, func(n int) int {
		code := codes[0]
		codes = codes[1:]
		return code
	}, fixedClock(now))

	first, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)
	second, err := svc.Issue(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(context.Background(), "user@example.com", first), common.ErrValidation)
	assert.NoError(t, svc.Verify(context.Background(), "user@example.com", second))
}
