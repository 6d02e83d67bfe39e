package pure_utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocaleNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"thousands space and decimal comma", "1 234,56", 1234.56},
		{"non breaking space", "1 234,56", 1234.56},
		{"narrow non breaking space", "12 000", 12000},
		{"percent", "12%", 12},
		{"percent with space", "12,5 %", 12.5},
		{"empty", "", 0},
		{"letters only", "abc", 0},
		{"already normalized", "1234.56", 1234.56},
		{"negative", "-15,2", -15.2},
		{"currency suffix", "2 500 €", 2500},
		{"dot thousands and decimal comma", "1.234,56", 1234.56},
		{"comma thousands and decimal dot", "1,234.56", 1234.56},
		{"several comma groups", "1,234,567", 1234567},
		{"lone minus", "-", 0},
		{"garbage between digits", "1-2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseLocaleNumber(tt.input), 1e-9)
		})
	}
}

func TestParseLocaleNumber_Idempotent(t *testing.T) {
	for _, input := range []string{"0", "42", "1234.56", "-3.5", "0.01"} {
		first := ParseLocaleNumber(input)
		second := ParseLocaleNumber(strconv.FormatFloat(first, 'f', -1, 64))
		assert.Equal(t, first, second, input)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 50.0, Round2(50))
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, 1234567.89, Round2(1234567.885))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(-5, 2, 96))
	assert.Equal(t, 96.0, Clamp(500, 2, 96))
	assert.Equal(t, 50.0, Clamp(50, 2, 96))
}
