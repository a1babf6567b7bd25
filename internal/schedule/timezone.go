package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTimezone is applied to stores with no timezone row at all.
// The upstream dataset is US-centric and documents this default.
const DefaultTimezone = "America/Chicago"

// ErrUnknownTimezone marks a store timezone row naming an invalid IANA zone.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Resolve loads the IANA zone for the given name. An empty name resolves to
// DefaultTimezone; an unrecognized name fails with ErrUnknownTimezone.
func Resolve(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}
