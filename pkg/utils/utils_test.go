package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.UTC

	d, err := ParseDate("2024-03-05", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), d)

	d, err = ParseDate("2024-03-05T10:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("not-a-date", loc)
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	loc := time.UTC
	end := EndOfDay(time.Date(2024, 3, 5, 8, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, int(999*time.Millisecond), loc), end)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), StartOfDay(end, loc))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestNormalizePhone(t *testing.T) {
	p, err := NormalizePhone("098765 43210", "IN")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", p)

	p, err = NormalizePhone("  ", "IN")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = NormalizePhone("12345", "IN")
	assert.Error(t, err)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+919876543210", "Hi Ravi, amount due")
	assert.Equal(t, "https://wa.me/919876543210?text=Hi%20Ravi%2C%20amount%20due", link)
	assert.Equal(t, "https://wa.me/919876543210", WhatsAppLink("+919876543210", ""))
}

func TestGenerateBillNo(t *testing.T) {
	id := uuid.MustParse("3f2a9c1b-0000-4000-8000-000000000000")
	no := GenerateBillNo(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), id)
	assert.Equal(t, "BILL-20240115-3F2A9C1B", no)
}
