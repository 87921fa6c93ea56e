package conflict

import (
	"fmt"
	"strings"
)

const (
	defaultCandidateLabel = "This batch"
	defaultExistingLabel  = "another class"
	defaultSubjectLabel   = "this subject"
)

func candidateLabel(c slot) string {
	if c.Label == "" {
		return defaultCandidateLabel
	}
	return c.Label
}

func existingLabel(e ScheduleItem) string {
	if label := strings.TrimSpace(e.Label); label != "" {
		return label
	}
	return defaultExistingLabel
}

func subjectLabel(c slot, e ScheduleItem) string {
	if c.SubjectName != "" {
		return c.SubjectName
	}
	if e.SubjectName != "" {
		return e.SubjectName
	}
	return defaultSubjectLabel
}

func duplicateMessage(e ScheduleItem) string {
	if e.Source == SourceEnrollment {
		return fmt.Sprintf("You are already enrolled in %s.", existingLabel(e))
	}
	return fmt.Sprintf("%s is already in your cart.", existingLabel(e))
}

func sameCenterMessage(c slot, e ScheduleItem) string {
	subject := subjectLabel(c, e)
	held := "in your cart"
	if e.Source == SourceEnrollment {
		held = "enrolled"
	}
	return fmt.Sprintf(
		"You already have a %s batch at %s (%s, %s). Contact the center to switch batches.",
		subject, e.BusinessName, existingLabel(e), held,
	)
}

func dualCenterMessage(c slot, e ScheduleItem) string {
	return fmt.Sprintf(
		"You will be taking %s at both %s and %s.",
		subjectLabel(c, e), c.BusinessName, e.BusinessName,
	)
}

// adjacentMessage describes two back-to-back classes in start order.
func adjacentMessage(c slot, e ScheduleItem, days []Weekday) string {
	type part struct {
		label, business string
		start, end      int
	}
	cand := part{candidateLabel(c), c.BusinessName, c.start, c.end}
	exist := part{existingLabel(e), e.BusinessName, e.StartMinutes, e.EndMinutes}
	first, second := exist, cand
	if e.EndMinutes != c.start {
		first, second = cand, exist
	}

	if c.BusinessID != e.BusinessID {
		return fmt.Sprintf(
			"Back-to-back at different locations on %s: %s at %s ends at %s and %s at %s starts right away. Allow time to travel.",
			formatDays(days), first.label, first.business, MinutesToTime(first.end), second.label, second.business,
		)
	}
	return fmt.Sprintf(
		"Consecutive classes at %s on %s: %s (%s) followed by %s (%s).",
		c.BusinessName, formatDays(days),
		first.label, FormatRange(first.start, first.end),
		second.label, FormatRange(second.start, second.end),
	)
}

func overlapMessage(c slot, e ScheduleItem, rel relation) string {
	cl := candidateLabel(c)
	el := existingLabel(e)
	cr := FormatRange(c.start, c.end)
	er := FormatRange(e.StartMinutes, e.EndMinutes)
	days := formatDays(rel.days)
	duration := FormatDuration(rel.window.EndMinutes - rel.window.StartMinutes)

	switch rel.shape {
	case shapeExact:
		return fmt.Sprintf(
			"%s runs at exactly the same time as %s (%s) on %s, clashing for %s.",
			cl, el, er, days, duration,
		)
	case shapeCandidateInside:
		return fmt.Sprintf(
			"%s (%s) falls entirely within %s (%s) on %s, clashing for %s.",
			cl, cr, el, er, days, duration,
		)
	case shapeExistingInside:
		return fmt.Sprintf(
			"%s (%s) completely covers %s (%s) on %s, clashing for %s.",
			cl, cr, el, er, days, duration,
		)
	default:
		return fmt.Sprintf(
			"%s (%s) overlaps with %s (%s) on %s from %s, clashing for %s.",
			cl, cr, el, er, days, rel.window.Label, duration,
		)
	}
}
