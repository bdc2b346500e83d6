package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{" 30 ", 30},
		{"30.5", 30},
		{"1.5", 1},
		{"2abc", 2},
		{"-4", -4},
		{"+7min", 7},
		{"007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLeadingInt(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLeadingIntRejects(t *testing.T) {
	for _, in := range []string{"", "abc", ".5", "-", "x12", "99999999999999999999999"} {
		_, err := ParseLeadingInt(in)
		assert.Error(t, err, in)
	}
}
