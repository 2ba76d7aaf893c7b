package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1_103_000, "$1.1M"},
		{2_500_000, "$2.5M"},
		{1_000_000, "$1.0M"},
		{999_999, "$1000K"},
		{551_500, "$552K"},
		{21_212, "$21K"},
		{1_000, "$1K"},
		{950, "$950"},
		{0, "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.amount))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "11.0%", FormatPercent(11))
	assert.Equal(t, "7.7%", FormatPercent(7.7))
	assert.Equal(t, "0.0%", FormatPercent(0))
}
