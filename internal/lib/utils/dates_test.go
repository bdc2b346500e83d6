package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2023-01-01", time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{" 2023-01-31 ", time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)},
		{"2023-01-01T10:30:00Z", time.Date(2023, time.January, 1, 10, 30, 0, 0, time.UTC)},
		{"2023-01-01T10:30:00+02:00", time.Date(2023, time.January, 1, 8, 30, 0, 0, time.UTC)},
		{"2023-01-01T10:30:00", time.Date(2023, time.January, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2023-13-01", "01/02/2023"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Sun Jan 01 2023", FormatDate(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Wed Feb 01 2023", FormatDate(time.Date(2023, time.February, 1, 23, 59, 0, 0, time.UTC)))
}
