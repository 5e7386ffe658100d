package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders a duration as an HH:MM:SS.mmm timestamp
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// ParseTimestamp parses a timestamp string (HH:MM:SS.mmm or SS.mmm or MM:SS)
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, ":")

	var hours, minutes, seconds float64
	var err error

	switch len(parts) {
	case 1:
		// Just seconds (e.g., "45.5")
		seconds, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}

	case 2:
		// MM:SS format
		minutes, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		seconds, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}

	case 3:
		// HH:MM:SS format
		hours, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		minutes, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}

	default:
		return 0, fmt.Errorf("invalid timestamp format: %s", s)
	}

	total := hours*3600 + minutes*60 + seconds
	if total < 0 {
		return 0, fmt.Errorf("negative timestamp: %s", s)
	}

	return time.Duration(total * float64(time.Second)), nil
}
