package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EntryType distinguishes manual ledger sales from expenses
type EntryType string

const (
	EntryTypeSale    EntryType = "sale"
	EntryTypeExpense EntryType = "expense"
)

// ParseEntryType validates a raw entry type.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeSale, EntryTypeExpense:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("type must be either 'sale' or 'expense'")
}

func (t EntryType) String() string {
	return string(t)
}

func (t EntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *EntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseEntryType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t EntryType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *EntryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = EntryType(v)
	case []byte:
		*t = EntryType(v)
	default:
		return fmt.Errorf("unsupported entry type %T", value)
	}
	return nil
}
