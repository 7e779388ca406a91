package feed

import "time"

// DateToken is one of the relative-date values a feed filter may compare
// against. The set is closed; anything else is an opaque scalar.
type DateToken string

const (
	Last30Minutes DateToken = "LAST_30_MINUTES"
	LastHour      DateToken = "LAST_HOUR"
	Last24Hours   DateToken = "LAST_24_HOURS"
	Last2Days     DateToken = "LAST_2_DAYS"
	Last3Days     DateToken = "LAST_3_DAYS"
	Last7Days     DateToken = "LAST_7_DAYS"
	Last30Days    DateToken = "LAST_30_DAYS"
	Last365Days   DateToken = "LAST_365_DAYS"
	PreviousMonth DateToken = "PREVIOUS_MONTH"
	CurrentMonth  DateToken = "CURRENT_MONTH"
	PreviousWeek  DateToken = "PREVIOUS_WEEK"
	CurrentWeek   DateToken = "CURRENT_WEEK"
)

// rolling durations for the LAST_* tokens.
var rollingWindows = map[DateToken]time.Duration{
	Last30Minutes: 30 * time.Minute,
	LastHour:      time.Hour,
	Last24Hours:   24 * time.Hour,
	Last2Days:     2 * 24 * time.Hour,
	Last3Days:     3 * 24 * time.Hour,
	Last7Days:     7 * 24 * time.Hour,
	Last30Days:    30 * 24 * time.Hour,
}

// parseDateToken reports whether a resolved filter value is a relative-date
// token.
func parseDateToken(s string) (DateToken, bool) {
	tok := DateToken(s)
	switch tok {
	case Last30Minutes, LastHour, Last24Hours, Last2Days, Last3Days,
		Last7Days, Last30Days, Last365Days,
		PreviousMonth, CurrentMonth, PreviousWeek, CurrentWeek:
		return tok, true
	}
	return "", false
}

// startOfWeek returns midnight of the Sunday beginning t's week.
func startOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}

// startOfMonth returns midnight of the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// equalsBounds returns the [from, to] unix-second interval an EQUALS filter
// matches for a date token. to is 0 for open-ended windows.
func equalsBounds(tok DateToken, now time.Time) (from, to int64) {
	if d, ok := rollingWindows[tok]; ok {
		return now.Add(-d).Unix(), 0
	}
	switch tok {
	case Last365Days:
		return now.AddDate(-1, 0, 0).Unix(), 0
	case PreviousMonth:
		prev := now.AddDate(0, -1, 0)
		start := startOfMonth(prev)
		return start.Unix(), start.AddDate(0, 1, 0).Add(-time.Second).Unix()
	case CurrentMonth:
		return startOfMonth(now).Unix(), 0
	case PreviousWeek:
		start := startOfWeek(now.AddDate(0, 0, -7))
		return start.Unix(), start.AddDate(0, 0, 7).Add(-time.Second).Unix()
	case CurrentWeek:
		return startOfWeek(now).Unix(), 0
	}
	return 0, 0
}

// notEqualsBound returns the inclusive upper unix-second bound a NOT_EQUALS
// filter matches for a date token.
//
// For PREVIOUS_MONTH and PREVIOUS_WEEK the bound is the start of the previous
// unit, which also excludes the current unit instead of matching the true
// complement of EQUALS. This boundary is product-observed behavior and must
// not be corrected here.
func notEqualsBound(tok DateToken, now time.Time) int64 {
	if d, ok := rollingWindows[tok]; ok {
		return now.Add(-d).Unix()
	}
	switch tok {
	case Last365Days:
		return now.AddDate(-1, 0, 0).Unix()
	case PreviousMonth:
		return startOfMonth(now.AddDate(0, -1, 0)).Unix()
	case CurrentMonth:
		return startOfMonth(now).Unix()
	case PreviousWeek:
		return startOfWeek(now.AddDate(0, 0, -7)).Unix()
	case CurrentWeek:
		return startOfWeek(now).Unix()
	}
	return 0
}
