package conflict

import "strings"

// Weekday is a token from the closed mon..sun vocabulary.
type Weekday string

// Weekday tokens.
const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// schedulePatterns maps batch recurrence codes to concrete weekdays.
var schedulePatterns = map[string][]Weekday{
	"mwf":   {Monday, Wednesday, Friday},
	"tts":   {Tuesday, Thursday, Saturday},
	"daily": {Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
}

// ParseWeekday accepts a weekday token in any case.
func ParseWeekday(raw string) (Weekday, bool) {
	day := Weekday(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := weekdayNames[day]; !ok {
		return "", false
	}
	return day, true
}

// Name returns the full English day name.
func (d Weekday) Name() string {
	return weekdayNames[d]
}

// NormalizeDays parses raw tokens, dropping unknown values and repeats while
// keeping first-seen order.
func NormalizeDays(raw []string) []Weekday {
	days := make([]Weekday, 0, len(raw))
	seen := make(map[Weekday]struct{}, len(raw))
	for _, token := range raw {
		day, ok := ParseWeekday(token)
		if !ok {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	return days
}

// IntersectDays returns the days of a that also appear in b, in a's order.
func IntersectDays(a, b []Weekday) []Weekday {
	lookup := make(map[Weekday]struct{}, len(b))
	for _, day := range b {
		lookup[day] = struct{}{}
	}
	shared := make([]Weekday, 0, len(a))
	for _, day := range a {
		if _, ok := lookup[day]; ok {
			shared = append(shared, day)
		}
	}
	return shared
}

// ResolveDays maps a schedule pattern code to weekdays. Unknown or empty
// patterns fall back to the explicitly listed custom days.
func ResolveDays(pattern string, customDays []string) []Weekday {
	if days, ok := schedulePatterns[strings.ToLower(strings.TrimSpace(pattern))]; ok {
		out := make([]Weekday, len(days))
		copy(out, days)
		return out
	}
	return NormalizeDays(customDays)
}

// formatDays joins day names as "Monday, Wednesday and Friday".
func formatDays(days []Weekday) string {
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, day.Name())
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
