package contextscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortForm(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1K"},
		{1_450, "1.4K"},
		{1_500, "1.5K"},
		{1_750, "1.8K"},
		{8_192, "8.2K"},
		{128_000, "128K"},
		{999_950, "1000.0K"},
		{1_000_000, "1M"},
		{1_048_576, "1.0M"},
		{1_150_000, "1.1M"},
		{1_250_000, "1.3M"},
		{1_500_000, "1.5M"},
		{10_000_000, "10M"},
		{5_830_000_000, "5.8B"},
		{-12, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortForm(tt.in), "ShortForm(%d)", tt.in)
	}
}

func TestLongForm(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{128_000, "128,000"},
		{999_999, "999,999"},
		{1_000_000, "1.0M"},
		{1_048_576, "1.0M"},
		{12_000_000, "12.0M"},
		{5_830_000_000, "5.8B"},
		{-1, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LongForm(tt.in), "LongForm(%d)", tt.in)
	}
}

func TestGroupedNumber(t *testing.T) {
	assert.Equal(t, "0", GroupedNumber(0))
	assert.Equal(t, "1,234", GroupedNumber(1234))
	assert.Equal(t, "12,000,000", GroupedNumber(12_000_000))
}

func TestFixed1(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.15, "1.1"}, // stored just below 1.15
		{1.45, "1.4"},
		{1.25, "1.3"}, // exact tie rounds up
		{0.75, "0.8"},
		{2.5, "2.5"},
		{999.95, "1000.0"},
		{0.35, "0.3"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fixed1(tt.in), "fixed1(%v)", tt.in)
	}
}
