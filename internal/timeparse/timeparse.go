package timeparse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day with no date and no zone.
type Clock struct {
	Hour   int
	Minute int
}

// Default is what Normalize returns for input it cannot read.
var Default = Clock{Hour: 9}

// numbers too long for an int are clamped here, which no business-hours
// window accepts
const maxField = math.MaxInt32

// digits, optional :minutes, optional am/pm/a/p marker
var pattern = regexp.MustCompile(`(?i)(\d+)(?::(\d+))?\s*(am|pm|a|p)?`)

// Normalize pulls an hour and minute out of free-form text like "10:30 AM",
// "2pm" or "at 3 p". Anything unreadable falls back to 09:00 instead of
// failing; callers rely on that.
func Normalize(s string) Clock {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Default
	}

	hour, err := atoi(m[1])
	if err != nil {
		return Default
	}
	minute := 0
	if m[2] != "" {
		if minute, err = atoi(m[2]); err != nil {
			return Default
		}
	}

	switch marker := strings.ToLower(m[3]); {
	case strings.HasPrefix(marker, "p") && hour < 12:
		hour += 12
	case strings.HasPrefix(marker, "a") && hour == 12:
		hour = 0
	}

	return Clock{Hour: hour, Minute: minute}
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) || n > maxField {
		return maxField, nil
	}
	return n, err
}

// String renders the clock as zero-padded HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
