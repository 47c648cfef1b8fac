package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSeconds interprets a pose duration argument. Accepted forms:
// clock labels ("1:30", "0:45", "1:00:00"), plain seconds ("90"), and
// Go duration strings ("1m30s"). Fractional seconds are rejected.
func ParseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("duration %q has sub-second precision", s)
	}
	return int(d / time.Second), nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock duration %q", s)
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid clock duration %q", s)
		}
		// Minute and second fields must stay under 60 when a higher
		// field precedes them.
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("invalid clock duration %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
