package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo24Hour(t *testing.T) {
	got, err := To24Hour("09:30 PM")
	assert.NoError(t, err)
	assert.Equal(t, "21:30", got)

	got, err = To24Hour("12:00 AM")
	assert.NoError(t, err)
	assert.Equal(t, "00:00", got)

	got, err = To24Hour("12:15 PM")
	assert.NoError(t, err)
	assert.Equal(t, "12:15", got)
}

func TestTo24Hour_Malformed(t *testing.T) {
	for _, in := range []string{"", "25:00 PM", "9.30 PM", "09:30", "hello"} {
		_, err := To24Hour(in)
		assert.ErrorIs(t, err, ErrParse, "input %q", in)
	}
}

func TestDuration_CrossesMidnight(t *testing.T) {
	got, err := Duration("22:00", "06:00")
	assert.NoError(t, err)
	assert.Equal(t, "8h0m", got)

	got, err = Duration("23:45", "00:15")
	assert.NoError(t, err)
	assert.Equal(t, "0h30m", got)
}

func TestDuration_SameDay(t *testing.T) {
	got, err := Duration("01:10", "09:25")
	assert.NoError(t, err)
	assert.Equal(t, "8h15m", got)
}

func TestDuration_EqualEndpoints(t *testing.T) {
	// Equal times are a zero-length interval, not a full day.
	got, err := Duration("06:00", "06:00")
	assert.NoError(t, err)
	assert.Equal(t, "0h0m", got)
}

func TestDurationDifference(t *testing.T) {
	got, err := DurationDifference("8h0m", "7h30m")
	assert.NoError(t, err)
	assert.Equal(t, "-0h30m", got)

	got, err = DurationDifference("7h30m", "8h0m")
	assert.NoError(t, err)
	assert.Equal(t, "+0h30m", got)

	got, err = DurationDifference("8h0m", "8h0m")
	assert.NoError(t, err)
	assert.Equal(t, "+0h0m", got)

	got, err = DurationDifference("6h15m", "9h5m")
	assert.NoError(t, err)
	assert.Equal(t, "+2h50m", got)
}

func TestDurationDifference_Malformed(t *testing.T) {
	_, err := DurationDifference("8h", "7h30m")
	assert.ErrorIs(t, err, ErrParse)

	_, err = DurationDifference("8h0m", "half past")
	assert.ErrorIs(t, err, ErrParse)
}
