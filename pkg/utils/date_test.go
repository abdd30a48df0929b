package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected time.Time
		WantErr  bool
	}{
		{Name: "calendar date", Input: "2025-01-01", Expected: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "rfc3339 truncated to the day", Input: "2025-01-03T15:04:05Z", Expected: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Name: "rfc3339 with offset", Input: "2025-01-03T01:00:00+07:00", Expected: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Name: "garbage", Input: "next tuesday", WantErr: true},
		{Name: "empty", Input: "", WantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := ParseDate(tc.Input)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.Expected.Equal(got), "expected %s, got %s", tc.Expected, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-01-03", FormatDate(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)))
}
