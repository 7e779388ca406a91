package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-13 is a Wednesday.
var testNow = time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

func TestParseDateToken(t *testing.T) {
	tok, ok := parseDateToken("LAST_24_HOURS")
	require.True(t, ok)
	assert.Equal(t, Last24Hours, tok)

	_, ok = parseDateToken("DE")
	assert.False(t, ok)
	_, ok = parseDateToken("")
	assert.False(t, ok)
}

func TestStartOfWeekIsSunday(t *testing.T) {
	start := startOfWeek(testNow)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)

	// a Sunday is its own week start
	sunday := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))
}

func TestEqualsBoundsRollingWindows(t *testing.T) {
	from, to := equalsBounds(Last24Hours, testNow)
	assert.Equal(t, testNow.Add(-24*time.Hour).Unix(), from)
	assert.Zero(t, to)

	from, to = equalsBounds(Last30Minutes, testNow)
	assert.Equal(t, testNow.Add(-30*time.Minute).Unix(), from)
	assert.Zero(t, to)

	from, to = equalsBounds(Last365Days, testNow)
	assert.Equal(t, testNow.AddDate(-1, 0, 0).Unix(), from)
	assert.Zero(t, to)
}

func TestEqualsBoundsCalendarUnits(t *testing.T) {
	from, to := equalsBounds(CurrentMonth, testNow)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix(), from)
	assert.Zero(t, to)

	from, to = equalsBounds(PreviousMonth, testNow)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Unix(), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second).Unix(), to)

	from, to = equalsBounds(CurrentWeek, testNow)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Unix(), from)
	assert.Zero(t, to)

	from, to = equalsBounds(PreviousWeek, testNow)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC).Unix(), from)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Add(-time.Second).Unix(), to)
}

func TestNotEqualsBound(t *testing.T) {
	assert.Equal(t, testNow.Add(-24*time.Hour).Unix(), notEqualsBound(Last24Hours, testNow))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix(), notEqualsBound(CurrentMonth, testNow))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Unix(), notEqualsBound(CurrentWeek, testNow))
}

// NOT_EQUALS for previous-unit tokens bounds by the start of the previous
// unit, so posts inside the previous unit still match and posts in the current
// unit never do. The bound is asymmetric with EQUALS on purpose.
func TestNotEqualsBoundPreviousUnitsAsymmetry(t *testing.T) {
	prevMonthStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, prevMonthStart, notEqualsBound(PreviousMonth, testNow))

	// the EQUALS window for PREVIOUS_MONTH ends later than the NOT_EQUALS bound
	_, eqTo := equalsBounds(PreviousMonth, testNow)
	assert.Greater(t, eqTo, notEqualsBound(PreviousMonth, testNow))

	prevWeekStart := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, prevWeekStart, notEqualsBound(PreviousWeek, testNow))
	_, eqTo = equalsBounds(PreviousWeek, testNow)
	assert.Greater(t, eqTo, notEqualsBound(PreviousWeek, testNow))
}
