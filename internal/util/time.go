package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTimeFlexible accepts the daemon's log timestamp forms as well as
// RFC3339 and epoch milliseconds. The daemon writes comma millisecond
// separators, which are normalized before parsing.
func ParseTimeFlexible(timeStr string) (time.Time, error) {
	s := strings.TrimSpace(timeStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	// Epoch milliseconds are all digits and at least 11 of them, which
	// keeps bare years out of this branch.
	if len(s) >= 11 {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}

	if i := strings.LastIndexByte(s, ','); i >= 0 {
		s = s[:i] + "." + s[i+1:]
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}
	return t.UTC(), nil
}
