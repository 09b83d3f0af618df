package operands

import (
	"errors"
	"strconv"
	"strings"
)

// ParseInteger converts a decimal literal to an int64. Surrounding
// whitespace is ignored, one leading sign is accepted and single
// underscores may separate digits ("1_000").
func ParseInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, ErrSyntax
	}

	prevDigit := false
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			prevDigit = true
		case c == '_' && prevDigit && i+1 < len(digits):
			prevDigit = false
		default:
			return 0, ErrSyntax
		}
	}
	if !prevDigit {
		return 0, ErrSyntax
	}

	v, err := strconv.ParseInt(strings.Replace(s, "_", "", -1), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrRange
		}
		return 0, ErrSyntax
	}
	return v, nil
}
