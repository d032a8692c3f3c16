package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReaisToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2000", 200000},
		{"2.000,00", 200000},
		{"R$ 2.000,50", 200050},
		{"R$2000,5", 200050},
		{"2000.50", 200050},
		{"1.234.567,89", 123456789},
		{"2.000", 200000},
		{"0,005", 1},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReaisToCents(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReaisToCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "R$", "-10", "abc", "1,2,3", "10.5.5"} {
		_, err := ParseReaisToCents(in)
		assert.Error(t, err, in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "R$ 2.000,00", FormatCents(200000))
	assert.Equal(t, "R$ 0,05", FormatCents(5))
	assert.Equal(t, "R$ 1.234.567,89", FormatCents(123456789))
	assert.Equal(t, "R$ 999,99", FormatCents(99999))
	assert.Equal(t, "-R$ 10,00", FormatCents(-1000))
}
