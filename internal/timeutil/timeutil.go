// Package timeutil implements the clock-string arithmetic used by sleep
// schedules: 12-hour to 24-hour conversion, durations across midnight, and
// signed duration deltas.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrParse reports a clock or duration string that does not match the
// expected fixed format.
var ErrParse = errors.New("timeutil: malformed time")

const (
	layout12 = "03:04 PM"
	layout24 = "15:04"
)

// To24Hour converts "hh:mm AM/PM" to "HH:mm".
func To24Hour(clock string) (string, error) {
	t, err := time.Parse(layout12, clock)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrParse, clock)
	}
	return t.Format(layout24), nil
}

// Duration computes end minus start for two "HH:mm" clock strings and
// renders it as "XhYm". An end earlier than start is treated as crossing
// midnight, so the interval gains 24 hours. Equal endpoints yield "0h0m",
// never a full day. Minutes are floored.
func Duration(start, end string) (string, error) {
	startMin, err := clockMinutes(start)
	if err != nil {
		return "", err
	}
	endMin, err := clockMinutes(end)
	if err != nil {
		return "", err
	}
	diff := endMin - startMin
	if diff < 0 {
		diff += 24 * 60
	}
	return fmt.Sprintf("%dh%dm", diff/60, diff%60), nil
}

// DurationDifference computes actual minus planned for two "XhYm" duration
// strings and renders the delta with an explicit sign. A zero delta renders
// as "+0h0m".
func DurationDifference(planned, actual string) (string, error) {
	plannedMin, err := durationMinutes(planned)
	if err != nil {
		return "", err
	}
	actualMin, err := durationMinutes(actual)
	if err != nil {
		return "", err
	}
	diff := actualMin - plannedMin
	sign := "+"
	if diff < 0 {
		sign = "-"
		diff = -diff
	}
	return fmt.Sprintf("%s%dh%dm", sign, diff/60, diff%60), nil
}

func clockMinutes(clock string) (int, error) {
	t, err := time.Parse(layout24, clock)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func durationMinutes(dur string) (int, error) {
	var hours, minutes int
	n, err := fmt.Sscanf(dur, "%dh%dm", &hours, &minutes)
	if err != nil || n != 2 || hours < 0 || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrParse, dur)
	}
	return hours*60 + minutes, nil
}
