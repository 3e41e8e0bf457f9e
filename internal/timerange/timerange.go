package timerange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingParameter is returned when a required range parameter is absent or empty.
var ErrMissingParameter = errors.New("missing parameter")

// FormatError reports a timecode that does not decompose into exactly three
// non-negative integer fields.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid timecode %q: expected HH:MM:SS", e.Input)
}

// TimeRange is a sub-segment of a source media file, in second offsets.
type TimeRange struct {
	Start int
	End   int
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", FormatTimecode(r.Start), FormatTimecode(r.End))
}

// Duration returns the range length in seconds.
func (r TimeRange) Duration() int {
	return r.End - r.Start
}

// ParseTimecode converts an "HH:MM:SS" string to seconds.
func ParseTimecode(text string) (int, error) {
	fields := strings.Split(text, ":")
	if len(fields) != 3 {
		return 0, &FormatError{Input: text}
	}
	var parts [3]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return 0, &FormatError{Input: text}
		}
		parts[i] = n
	}
	return parts[0]*3600 + parts[1]*60 + parts[2], nil
}

// FormatTimecode converts seconds back to "HH:MM:SS".
func FormatTimecode(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FromParams reads start_time and end_time from a parameter mapping and returns
// the ranges to hand to a downloader. The slice shape matches the downloader
// contract for one or more sub-ranges; this layer always produces one.
func FromParams(params map[string]string) ([]TimeRange, error) {
	startTime := params["start_time"]
	endTime := params["end_time"]
	if startTime == "" {
		return nil, fmt.Errorf("%w: start_time", ErrMissingParameter)
	}
	if endTime == "" {
		return nil, fmt.Errorf("%w: end_time", ErrMissingParameter)
	}
	start, err := ParseTimecode(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimecode(endTime)
	if err != nil {
		return nil, err
	}
	return []TimeRange{{Start: start, End: end}}, nil
}
