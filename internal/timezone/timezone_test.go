package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.True(t, IsValid("UTC"))
}

func TestFixedClockToday(t *testing.T) {
	ts := time.Date(2030, 1, 5, 23, 30, 0, 0, time.FixedZone("X", -3*3600))
	assert.Equal(t, "2030-01-05", FixedClock(ts).Today())
}

func TestClockToday(t *testing.T) {
	c := NewClock("UTC")
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), c.Today())
}
