package gateway

import (
	"github.com/goliatone/go-errors"
)

const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeSlotTaken          = "SLOT_TAKEN"
	ErrCodeInvalidCode        = "INVALID_VERIFICATION_CODE"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryBadInput).
				WithTextCode(ErrCodeInvalidCredentials)
	ErrUsernameTaken = errors.New("username is already taken", errors.CategoryConflict).
				WithTextCode(ErrCodeUsernameTaken)
	ErrSlotTaken = errors.New("time slot is already booked", errors.CategoryConflict).
			WithTextCode(ErrCodeSlotTaken)
	ErrInvalidCode = errors.New("verification code does not match", errors.CategoryBadInput).
			WithTextCode(ErrCodeInvalidCode)
)

func withMetadata(base *errors.Error, meta map[string]any) error {
	return base.Clone().WithMetadata(meta)
}
