package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateBillNo derives a human readable bill number from the bill date and id,
// e.g. "BILL-20240115-3F2A9C1B".
func GenerateBillNo(date time.Time, id uuid.UUID) string {
	return "BILL-" + date.Format("20060102") + "-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
