package domain

import (
	"fmt"
	"strconv"
)

// ParseID parses a decimal entity identifier. Malformed and non-positive
// values return ErrInvalidID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidID, id)
	}
	return id, nil
}
