// Package brl provides parsing and rendering of Brazilian-locale numeric
// values as they appear in point-of-sale text reports ("6.741,01",
// "354,00", "16,000"), plus dd/mm/yyyy date helpers. All parse functions
// degrade to zero values on malformed input; they never return an error.
package brl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	parenRe        = regexp.MustCompile(`\s*\([^)]*\)`)
	decimalCommaRe = regexp.MustCompile(`,\d{2}$`)
	brDateRe       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseValue converts a Brazilian-locale numeric string to a float64.
// Parenthetical suffixes (inline percentages) are stripped first. When the
// string contains a dot and ends in a comma plus exactly two digits, dots
// are thousands separators and the comma is the decimal point; otherwise
// the first comma becomes the decimal point and dots are left alone, so a
// bare "1.234" parses as 1.234. Malformed input yields 0.
func ParseValue(raw string) float64 {
	raw = parenRe.ReplaceAllString(raw, "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if strings.Contains(raw, ".") && decimalCommaRe.MatchString(raw) {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	} else {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}

	// Salvage the longest valid leading number, the way the source
	// reports' original consumer did ("1.234.567" -> 1.234).
	if prefix := floatPrefix(raw); prefix != "" {
		if v, err := strconv.ParseFloat(prefix, 64); err == nil {
			return v
		}
	}
	return 0
}

// floatPrefix returns the longest prefix of s that is a valid float
// literal: optional sign, digits, at most one dot.
func floatPrefix(s string) string {
	end := 0
	seenDot := false
	seenDigit := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			if seenDigit {
				return s[:end]
			}
			return ""
		}
	}
	if !seenDigit {
		return ""
	}
	return s[:end]
}

// FormatAmount renders a currency value with exactly two decimal places
// and a dot decimal point (locale conversion belongs to the presentation
// layer). Decimal arithmetic avoids float drift on values like 0.145.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// SumAmounts adds currency values without binary-float accumulation error.
func SumAmounts(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// FormatQuantity renders a product quantity: whole counts print without a
// fractional part ("3"), weighed quantities keep their decimals ("2.5").
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// ToISODate converts "dd/mm/yyyy" to "yyyy-mm-dd". Returns "" when the
// input does not look like a Brazilian date.
func ToISODate(br string) string {
	m := brDateRe.FindStringSubmatch(strings.TrimSpace(br))
	if m == nil {
		return ""
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	if d < 1 || d > 31 || mo < 1 || mo > 12 || y == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d)
}

// DayOfMonth extracts the day number from "dd/mm/yyyy" as a bare string
// ("05/03/2024" -> "5"). Returns "" on malformed input.
func DayOfMonth(br string) string {
	m := brDateRe.FindStringSubmatch(strings.TrimSpace(br))
	if m == nil {
		return ""
	}
	d, _ := strconv.Atoi(m[1])
	if d < 1 || d > 31 {
		return ""
	}
	return strconv.Itoa(d)
}

// CurrentDay returns today's day-of-month as a string, using the caller's
// clock. The Store parser falls back to it when a report carries no dates.
func CurrentDay(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return strconv.Itoa(now().Day())
}
