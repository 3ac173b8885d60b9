// FILE: hydrolog/src/internal/tz/tz_test.go
package tz

import (
	"testing"
	"time"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestCanonical(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", "UTC"},
		{"gmt", "UTC"},
		{" EST ", "America/New_York"},
		{"Pacific Daylight Time", "America/Los_Angeles"},
		{"UTC+5", "+05:00"},
		{"GMT-3:30", "-03:30"},
		{"+0530", "+05:30"},
		{"Europe/Oslo", "Europe/Oslo"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Canonical(tc.in))
		})
	}
}

func TestLocationConverter_Convert(t *testing.T) {
	c := NewLocationConverter(newTestLogger())

	t.Run("UTCToFixedOffset", func(t *testing.T) {
		in := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		out, dst, err := c.Convert(in, "UTC", "UTC+05:30")
		require.NoError(t, err)
		assert.False(t, dst)
		assert.Equal(t, "15:30", out.Format("15:04"))
		assert.True(t, in.Equal(out))
	})

	t.Run("WallClockInSourceZone", func(t *testing.T) {
		wall := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		out, _, err := c.Convert(wall, "+02:00", "UTC")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), out)
	})

	t.Run("DSTFlag", func(t *testing.T) {
		summer := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		_, dst, err := c.Convert(summer, "UTC", "EST")
		require.NoError(t, err)
		assert.True(t, dst)

		winter := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		_, dst, err = c.Convert(winter, "UTC", "EST")
		require.NoError(t, err)
		assert.False(t, dst)
	})

	t.Run("UnknownZone", func(t *testing.T) {
		_, _, err := c.Convert(time.Now(), "UTC", "Mars/Olympus_Mons")
		assert.Error(t, err)
		assert.False(t, c.Valid("Mars/Olympus_Mons"))
	})
}

func TestFormatOffset(t *testing.T) {
	loc := time.FixedZone("x", -(3*3600 + 30*60))
	assert.Equal(t, "-03:30", FormatOffset(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "+00:00", FormatOffset(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLoad(t *testing.T) {
	loc, err := Load("PST")
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())

	loc, err = Load("UTC+5:30")
	require.NoError(t, err)
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+30*60, off)

	_, err = Load("Nowhere/Special")
	assert.Error(t, err)
}
