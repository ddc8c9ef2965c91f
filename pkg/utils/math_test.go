package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{value: 3.14159, decimals: 2, want: 3.14},
		{value: 66.6666, decimals: 0, want: 67},
		{value: 12.5, decimals: 0, want: 13},
		{value: -12.5, decimals: 0, want: -13},
		{value: -0.4, decimals: 0, want: 0},
		{value: -2.345, decimals: 1, want: -2.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundDecimal(tt.value, tt.decimals), 1e-9, "RoundDecimal(%v, %d)", tt.value, tt.decimals)
	}
}
