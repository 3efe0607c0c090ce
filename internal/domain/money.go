package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatVND renders a whole-đồng amount with thousands separators: 50000 → "50,000".
func FormatVND(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatVNDDec renders a decimal amount rounded to whole đồng.
func FormatVNDDec(d decimal.Decimal) string {
	return FormatVND(d.Round(0).IntPart())
}

// FormatSigned renders profit with an explicit plus when non-negative.
func FormatSigned(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return "+" + FormatVNDDec(d)
	}
	return FormatVNDDec(d)
}
