package validators

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidPhone = errors.New("phone number has no digits")

// NormalizePhone strips formatting and returns the number as the purely
// numeric identifier the Customer table keys on.
func NormalizePhone(raw string) (int64, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return 0, ErrInvalidPhone
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrInvalidPhone
	}
	return n, nil
}
