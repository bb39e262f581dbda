package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     Change
	}{
		{
			// No movement off an empty baseline is not an increase.
			name: "both zero",
			want: Change{Value: 0, Percentage: 0, Increase: false},
		},
		{
			name:    "zero baseline with growth",
			current: 100,
			want:    Change{Value: 100, Percentage: 100, Increase: true},
		},
		{
			name:    "zero baseline with negative current",
			current: -50,
			want:    Change{Value: -50, Percentage: 100, Increase: false},
		},
		{
			name:     "halved",
			current:  50,
			previous: 100,
			want:     Change{Value: -50, Percentage: -50, Increase: false},
		},
		{
			name:     "grown",
			current:  150,
			previous: 100,
			want:     Change{Value: 50, Percentage: 50, Increase: true},
		},
		{
			name:     "flat",
			current:  100,
			previous: 100,
			want:     Change{Value: 0, Percentage: 0, Increase: true},
		},
		{
			name:     "negative baseline",
			current:  -100,
			previous: -200,
			want:     Change{Value: 100, Percentage: 50, Increase: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompareChange(tc.current, tc.previous))
		})
	}
}
