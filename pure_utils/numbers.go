package pure_utils

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseLocaleNumber reads a number as exported by french locale spreadsheets ("1 234,56", "12 %").
// Anything that cannot be read as a finite number is 0: blank and malformed cells count as absent data.
func ParseLocaleNumber(token string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, token)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = normalizeDecimalSeparator(cleaned)
	cleaned = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, cleaned)
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// normalizeDecimalSeparator leaves a single '.' as decimal separator. When both ',' and '.' are
// present, the last one is the decimal separator and the other one groups thousands.
func normalizeDecimalSeparator(s string) string {
	lastComma := strings.LastIndex(s, ",")
	if lastComma == -1 {
		return s
	}
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastDot == -1 && strings.Count(s, ",") == 1:
		return strings.Replace(s, ",", ".", 1)
	case lastDot == -1:
		return strings.ReplaceAll(s, ",", "")
	case lastComma > lastDot:
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	default:
		return strings.ReplaceAll(s, ",", "")
	}
}

// Round2 rounds to 2 decimal places, half away from zero. It rounds the shortest decimal form of the
// value, so 1.005 gives 1.01 even though 1.005*100 is just below 100.5 in binary.
func Round2(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	digits := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	integer, fraction, _ := strings.Cut(digits, ".")
	if len(fraction) <= 2 {
		return value
	}

	cents, err := strconv.ParseFloat(integer+fraction[:2], 64)
	if err != nil {
		return math.Round(value*100) / 100
	}
	if fraction[2] >= '5' {
		cents++
	}
	return math.Copysign(cents/100, value)
}

func Clamp(value, low, high float64) float64 {
	return math.Min(math.Max(value, low), high)
}
