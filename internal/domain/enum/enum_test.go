package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingBillStatusJSON(t *testing.T) {
	var s PendingBillStatus
	require.NoError(t, json.Unmarshal([]byte(`"paid"`), &s))
	assert.Equal(t, PendingBillStatusPaid, s)

	assert.Error(t, json.Unmarshal([]byte(`"settled"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`1`), &s))

	out, err := json.Marshal(PendingBillStatusPending)
	require.NoError(t, err)
	assert.JSONEq(t, `"pending"`, string(out))
}

func TestPendingBillStatusScan(t *testing.T) {
	var s PendingBillStatus
	require.NoError(t, s.Scan([]byte("paid")))
	assert.Equal(t, PendingBillStatusPaid, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, PendingBillStatusPending, s)
	assert.True(t, s.IsValid())
	assert.False(t, PendingBillStatus("void").IsValid())
}

func TestParseEntryType(t *testing.T) {
	typ, err := ParseEntryType("expense")
	require.NoError(t, err)
	assert.Equal(t, EntryTypeExpense, typ)

	_, err = ParseEntryType("refund")
	assert.EqualError(t, err, "type must be either 'sale' or 'expense'")
}
