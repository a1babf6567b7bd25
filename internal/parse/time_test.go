package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalTime(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  int
		expectErr bool
	}{
		{
			name:     "Midnight",
			raw:      "00:00:00",
			expected: 0,
		},
		{
			name:     "Morning open",
			raw:      "09:30:00",
			expected: 9*3600 + 30*60,
		},
		{
			name:     "Last second of day",
			raw:      "23:59:59",
			expected: 24*3600 - 1,
		},
		{
			name:     "Exclusive day end",
			raw:      "24:00:00",
			expected: 24 * 3600,
		},
		{
			name:     "Surrounding whitespace",
			raw:      " 08:00:00 ",
			expected: 8 * 3600,
		},
		{
			name:      "Past day end",
			raw:       "24:00:01",
			expectErr: true,
		},
		{
			name:      "Missing seconds",
			raw:       "09:30",
			expectErr: true,
		},
		{
			name:      "Garbage",
			raw:       "nine thirty",
			expectErr: true,
		},
		{
			name:      "Minute out of range",
			raw:       "10:61:00",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalTime(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestUTCTimestamp(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "Dataset layout with fraction and suffix",
			raw:      "2023-01-24 09:06:42.605777 UTC",
			expected: time.Date(2023, 1, 24, 9, 6, 42, 605777000, time.UTC),
		},
		{
			name:     "Plain layout",
			raw:      "2023-01-05 23:00:00",
			expected: time.Date(2023, 1, 5, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339",
			raw:      "2023-01-05T23:00:00Z",
			expected: time.Date(2023, 1, 5, 23, 0, 0, 0, time.UTC),
		},
		{
			name:      "Unparseable",
			raw:       "last tuesday",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := UTCTimestamp(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(got), "want %v, got %v", tc.expected, got)
			}
		})
	}
}
