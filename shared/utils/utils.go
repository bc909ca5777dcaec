package utils

import (
	"strconv"
)

// ParseID parses a decimal identifier from a path segment. Negative values
// are valid ids that simply match nothing.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
