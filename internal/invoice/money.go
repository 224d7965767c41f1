package invoice

import (
	"strconv"
	"strings"
)

// ParseMoney converts display amounts like "$350.00" or "1,250.50" to a
// float. Everything except digits and the first decimal point is dropped;
// input with no parsable number comes back as 0. This is the only place raw
// money strings cross into arithmetic.
func ParseMoney(s string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
