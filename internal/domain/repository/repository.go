package repository

import "errors"

var (
	// ErrPendingBillNotFound is returned by Promote when the id does not exist.
	ErrPendingBillNotFound = errors.New("pending bill not found")
	// ErrAlreadyPromoted is returned by Promote when the bill is no longer pending.
	ErrAlreadyPromoted = errors.New("pending bill is not in pending status")
)
