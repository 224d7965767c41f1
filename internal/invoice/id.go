package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeInvoiceID produces the stable 6-character id portion of an
// invoice number. With no rawID the seed is hashed, so the same seed always
// yields the same 6-digit id without a generator service. An explicit rawID
// is reshaped instead: digits are kept (last 6, left-padded with zeros); a
// rawID with no digits at all keeps its first 6 characters, right-padded
// with zeros.
func NormalizeInvoiceID(rawID, seed string) string {
	if rawID == "" {
		return hashedID(seed)
	}

	var digits strings.Builder
	for _, r := range rawID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if d := digits.String(); d != "" {
		if len(d) > 6 {
			d = d[len(d)-6:]
		}
		return strings.Repeat("0", 6-len(d)) + d
	}

	raw := rawID
	if len(raw) > 6 {
		raw = raw[:6]
	}
	return raw + strings.Repeat("0", 6-len(raw))
}

// hashedID reduces a polynomial rolling hash of the seed into [100000,
// 999999], so the result is always exactly 6 digits.
func hashedID(seed string) string {
	var h uint32
	for _, r := range seed {
		h = h*31 + uint32(r)
	}
	return strconv.Itoa(int(100000 + h%900000))
}

// FormatInvoiceNumber renders "{id}-{version}" with the order version
// zero-padded to 3 digits. Amendments bump the version; the id portion
// never changes.
func FormatInvoiceNumber(id string, orderVersion int) string {
	return fmt.Sprintf("%s-%03d", id, orderVersion)
}
