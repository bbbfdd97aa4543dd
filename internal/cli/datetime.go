package cli

import (
	"fmt"
	"strings"
	"time"
)

// parseDateTime parses:
// - YYYY-MM-DD (midnight, local time)
// - YYYY-MM-DD HH:MM (local time)
// - RFC3339 / RFC3339Nano (timezone-aware)
//
// "none" or an empty string yields nil, which clears the date.
func parseDateTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02T15:04"} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts = ts.UTC()
			return &ts, nil
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	return nil, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339 or none)", s)
}
