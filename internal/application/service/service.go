package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/utils"
)

// Cache is the optional read-through cache and lock provider (Redis in production).
type Cache interface {
	GetObject(ctx context.Context, key string, dest interface{}) (bool, error)
	SetObject(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Clock returns the current time.
type Clock func() time.Time

func parseOptionalDate(field string, raw *string, loc *time.Location, now time.Time) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return now.UTC(), nil
	}
	t, err := utils.ParseDate(*raw, loc)
	if err != nil {
		return time.Time{}, apperror.NewValidationError(apperror.FieldError{
			Field:   field,
			Message: "Invalid " + field,
		})
	}
	return t.UTC(), nil
}

func parseOptionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperror.NewValidationError(apperror.FieldError{
			Field:   field,
			Message: field + " must be a valid id",
		})
	}
	return &id, nil
}
