package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// utcLayouts are the timestamp layouts accepted in polling data, tried in
// order. The bulk dataset uses "2006-01-02 15:04:05.999999 UTC".
var utcLayouts = []string{
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05 UTC",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LocalTime parses a wall-clock "HH:MM:SS" string into seconds since local
// midnight. "24:00:00" is accepted as the exclusive end of a day.
func LocalTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid local time %q: want HH:MM:SS", s)
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid local time %q: %w", s, err)
		}
		vals[i] = v
	}

	h, m, sec := vals[0], vals[1], vals[2]
	if h < 0 || h > 24 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid local time %q: out of range", s)
	}
	total := h*3600 + m*60 + sec
	if total > 24*3600 {
		return 0, fmt.Errorf("invalid local time %q: past 24:00:00", s)
	}
	return total, nil
}

// UTCTimestamp parses an absolute observation timestamp.
func UTCTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
