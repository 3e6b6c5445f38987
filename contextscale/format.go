package contextscale

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// ShortForm renders a token count compactly: 1K, 1.5K, 128K, 1M, 1.5M, 5.8B.
func ShortForm(n int) string {
	n = max(0, n)
	switch {
	case n >= 1_000_000_000:
		return oneDecimal(n, 1_000_000_000) + "B"
	case n >= 1_000_000:
		return scaled(n, 1_000_000) + "M"
	case n >= 1_000:
		return scaled(n, 1_000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

// LongForm renders a token count for headlines: 5.8B, 1.0M, 128,000.
func LongForm(n int) string {
	n = max(0, n)
	switch {
	case n >= 1_000_000_000:
		return oneDecimal(n, 1_000_000_000) + "B"
	case n >= 1_000_000:
		return oneDecimal(n, 1_000_000) + "M"
	default:
		return GroupedNumber(n)
	}
}

// GroupedNumber renders n with thousands separators.
func GroupedNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// scaled drops the decimal when n is an exact multiple of unit.
func scaled(n, unit int) string {
	if n%unit == 0 {
		return strconv.Itoa(n / unit)
	}
	return oneDecimal(n, unit)
}

// oneDecimal renders n/unit with one decimal.
func oneDecimal(n, unit int) string {
	return fixed1(float64(n) / float64(unit))
}

// fixed1 formats x with one decimal: the decimal nearest to the exact stored
// value of x, with exact ties rounded up.
func fixed1(x float64) string {
	// x.x5 is exactly representable only when 4x is an odd integer.
	if q := x * 4; q == math.Trunc(q) && math.Mod(q, 2) == 1 {
		x += 0.05
	}
	return strconv.FormatFloat(x, 'f', 1, 64)
}
