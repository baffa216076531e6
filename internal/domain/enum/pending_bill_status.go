package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PendingBillStatus represents the status of a pending bill
type PendingBillStatus string

const (
	PendingBillStatusPending PendingBillStatus = "pending"
	PendingBillStatusPaid    PendingBillStatus = "paid"
)

// ParsePendingBillStatus validates a raw status value.
func ParsePendingBillStatus(s string) (PendingBillStatus, error) {
	switch PendingBillStatus(s) {
	case PendingBillStatusPending, PendingBillStatusPaid:
		return PendingBillStatus(s), nil
	}
	return "", fmt.Errorf("status must be one of: pending, paid")
}

func (s PendingBillStatus) String() string {
	return string(s)
}

func (s PendingBillStatus) IsValid() bool {
	_, err := ParsePendingBillStatus(string(s))
	return err == nil
}

func (s PendingBillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *PendingBillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePendingBillStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PendingBillStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PendingBillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PendingBillStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PendingBillStatus(v)
	case []byte:
		*s = PendingBillStatus(v)
	default:
		return fmt.Errorf("unsupported status type %T", value)
	}
	return nil
}
