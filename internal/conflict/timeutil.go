package conflict

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeToMinutes converts "HH:MM" into minutes past midnight. Missing or
// non-numeric components count as zero and a trailing seconds part is ignored.
func TimeToMinutes(value string) int {
	parts := strings.Split(strings.TrimSpace(value), ":")
	hours := atoiOrZero(parts[0])
	minutes := 0
	if len(parts) > 1 {
		minutes = atoiOrZero(parts[1])
	}
	return hours*60 + minutes
}

// ParseClock is the strict form of TimeToMinutes used when normalising stored
// records: both components must be present and within a single day. An
// optional ":SS" suffix, as Postgres renders time columns, is accepted and
// truncated.
func ParseClock(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, false
		}
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ParseSlot splits a "HH:MM-HH:MM" slot into a half-open minute range.
func ParseSlot(slot string) (start, end int, ok bool) {
	parts := strings.Split(strings.TrimSpace(slot), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, ok = ParseClock(parts[0])
	if !ok {
		return 0, 0, false
	}
	end, ok = ParseClock(parts[1])
	if !ok || start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// TimeRangesOverlap reports whether [startA, endA) and [startB, endB) share
// at least one minute. Ranges that only touch at a boundary do not overlap.
func TimeRangesOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// OverlapMinutes returns the length of the shared portion of two ranges.
func OverlapMinutes(startA, endA, startB, endB int) int {
	return max(0, min(endA, endB)-max(startA, startB))
}

// MinutesToTime formats minutes past midnight as "h:mm AM/PM".
func MinutesToTime(mins int) string {
	hours := (mins / 60) % 24
	minutes := mins % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// FormatRange renders a minute range as "h:mm AM - h:mm PM".
func FormatRange(start, end int) string {
	return MinutesToTime(start) + " - " + MinutesToTime(end)
}

// FormatDuration renders a duration in minutes as "N hours M minutes",
// omitting whichever part is zero.
func FormatDuration(mins int) string {
	hours, rest := mins/60, mins%60
	if hours == 0 {
		return pluralize(strconv.Itoa(rest), rest == 1, "minute")
	}
	label := pluralize(strconv.Itoa(hours), hours == 1, "hour")
	if rest == 0 {
		return label
	}
	return label + " " + pluralize(strconv.Itoa(rest), rest == 1, "minute")
}

func clock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

func pluralize(amount string, singular bool, unit string) string {
	if singular {
		return amount + " " + unit
	}
	return amount + " " + unit + "s"
}

func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
