package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// An ISO string and a native timestamp for the same instant must resolve to
// the same time for windowing purposes.
func TestInstantEquivalentForms(t *testing.T) {
	native := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	fromTime := InstantFromTime(native)
	fromString := InstantFromString("2024-01-01T00:00:00Z")

	assert.True(t, fromTime.Present())
	assert.True(t, fromString.Present())
	assert.True(t, fromTime.Resolve().Equal(fromString.Resolve()))
}

func TestInstantParsing(t *testing.T) {
	assert.True(t, InstantFromString("2024-06-01T10:30:00+02:00").Present())
	assert.True(t, InstantFromString("2024-06-01T10:30:00.123Z").Present())
	assert.True(t, InstantFromString("2024-06-01").Present())

	assert.False(t, InstantFromString("").Present())
	assert.False(t, InstantFromString("tegnap").Present())
	assert.False(t, InstantFromString("1717236600").Present())
}

func TestInstantMissingResolvesToEpoch(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()

	assert.True(t, MissingInstant().Resolve().Equal(epoch))
	assert.True(t, InstantFromString("garbage").Resolve().Equal(epoch))
	assert.True(t, InstantFromPtr(nil).Resolve().Equal(epoch))
}

func TestInstantFromPtr(t *testing.T) {
	ts := time.Date(2025, 5, 4, 3, 2, 1, 0, time.UTC)
	i := InstantFromPtr(&ts)
	assert.True(t, i.Present())
	assert.True(t, i.Resolve().Equal(ts))
}
