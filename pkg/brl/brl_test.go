package brl

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"thousands and decimal comma", "6.741,01", 6741.01},
		{"plain decimal comma", "354,00", 354.00},
		{"comma with three digits is not currency", "16,000", 16.0},
		{"bare integer", "42", 42},
		{"bare dot decimal", "1.234", 1.234},
		{"empty", "", 0},
		{"no digits", "abc", 0},
		{"whitespace only", "   ", 0},
		{"parenthetical percentage stripped", "100,00 (12,5%)", 100.00},
		{"multi group thousands", "1.234.567,89", 1234567.89},
		{"leading salvage", "1.234.567", 1.234},
		{"negative", "-10,50", -10.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseValue(tt.input), 1e-9)
		})
	}
}

func TestParseValue_RoundTrip(t *testing.T) {
	// Canonical two-decimal renderings reparse to the same value.
	for _, v := range []float64{0, 0.01, 1, 45.5, 354, 6741.01, 99999.99} {
		s := FormatAmount(v)
		assert.InDelta(t, v, ParseValue(s), 0.005, "round trip of %s", s)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "6741.01", FormatAmount(6741.01))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "-12.30", FormatAmount(-12.3))
	assert.Equal(t, "0.15", FormatAmount(0.145+0.005)) // no float drift
}

func TestSumAmounts(t *testing.T) {
	assert.InDelta(t, 0.3, SumAmounts(0.1, 0.2), 1e-12)
	assert.InDelta(t, 0, SumAmounts(), 1e-12)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "0", FormatQuantity(0))
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2024-03-05", ToISODate("05/03/2024"))
	assert.Equal(t, "2024-03-05", ToISODate("5/3/2024"))
	assert.Equal(t, "", ToISODate("2024-03-05"))
	assert.Equal(t, "", ToISODate("32/01/2024"))
	assert.Equal(t, "", ToISODate(""))
}

func TestDayOfMonth(t *testing.T) {
	assert.Equal(t, "5", DayOfMonth("05/03/2024"))
	assert.Equal(t, "31", DayOfMonth("31/12/2023"))
	assert.Equal(t, "", DayOfMonth("nope"))
}

func TestCurrentDay(t *testing.T) {
	fixed := func() time.Time { return time.Date(2024, 7, 9, 12, 0, 0, 0, time.UTC) }
	assert.Equal(t, "9", CurrentDay(fixed))
	assert.Equal(t, fmt.Sprint(time.Now().Day()), CurrentDay(nil))
}
