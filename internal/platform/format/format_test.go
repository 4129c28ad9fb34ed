package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateTime_ValidInputs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-06-15T14:30:00Z", "Jun 15, 2024 2:30 PM"},
		{"2024-06-15T14:30:00.123456Z", "Jun 15, 2024 2:30 PM"},
		{"2024-06-15T14:30:00", "Jun 15, 2024 2:30 PM"},
		{"2024-01-02", "Jan 2, 2024 12:00 AM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DateTime(tc.in), "input %q", tc.in)
	}
}

func TestDateTime_Sentinels(t *testing.T) {
	assert.Equal(t, Unknown, DateTime(""))
	assert.Equal(t, InvalidDate, DateTime("not-a-date"))
	assert.Equal(t, InvalidDate, DateTime("15/06/2024"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Jun 15, 2024", Date("2024-06-15T14:30:00Z"))
	assert.Equal(t, Unknown, Date(""))
	assert.Equal(t, InvalidDate, Date("garbage"))
}

func TestAge_BirthdayBoundary(t *testing.T) {
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, Age(dob, dayBefore))

	onBirthday := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, Age(dob, onBirthday))

	monthBefore := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, Age(dob, monthBefore))
}

func TestAge_NeverNegative(t *testing.T) {
	dob := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, Age(dob, now))
}

func TestAgeFromISO(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, AgeFromISO("2000-06-15", now))
	assert.Equal(t, -1, AgeFromISO("bogus", now))
}
