package conflict

// relationKind tags how a candidate relates to one existing item. Exactly one
// kind applies to every pair, checked in declaration order.
type relationKind int

const (
	relationDuplicate relationKind = iota
	relationSameSubjectSameCenter
	relationDayDisjoint
	relationSeparated
	relationAdjacent
	relationOverlap
)

func (k relationKind) String() string {
	switch k {
	case relationDuplicate:
		return "duplicate"
	case relationSameSubjectSameCenter:
		return "same_subject_same_center"
	case relationDayDisjoint:
		return "day_disjoint"
	case relationSeparated:
		return "separated"
	case relationAdjacent:
		return "adjacent"
	case relationOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// overlapShape describes how two overlapping time ranges sit relative to each other.
type overlapShape int

const (
	shapePartial overlapShape = iota
	shapeExact
	shapeCandidateInside
	shapeExistingInside
)

// slot is a Candidate with its times resolved to minutes.
type slot struct {
	Candidate
	start int
	end   int
}

func resolve(c Candidate) slot {
	return slot{Candidate: c, start: TimeToMinutes(c.StartTime), end: TimeToMinutes(c.EndTime)}
}

// relation is the classified pair. days is only set once days are compared;
// window and shape are only meaningful for relationOverlap.
type relation struct {
	kind        relationKind
	sameSubject bool
	days        []Weekday
	window      TimeWindow
	shape       overlapShape
}

func classify(c slot, e ScheduleItem) relation {
	if c.BatchID != "" && c.BatchID == e.BatchID {
		return relation{kind: relationDuplicate}
	}

	sameSubject := c.SubjectID != "" && e.SubjectID != "" && c.SubjectID == e.SubjectID
	if sameSubject && c.BusinessID == e.BusinessID {
		return relation{kind: relationSameSubjectSameCenter, sameSubject: true}
	}

	days := IntersectDays(c.ScheduleDays, e.ScheduleDays)
	if len(days) == 0 {
		return relation{kind: relationDayDisjoint, sameSubject: sameSubject}
	}

	if !TimeRangesOverlap(c.start, c.end, e.StartMinutes, e.EndMinutes) {
		gap := min(abs(c.start-e.EndMinutes), abs(e.StartMinutes-c.end))
		if gap == 0 {
			return relation{kind: relationAdjacent, sameSubject: sameSubject, days: days}
		}
		return relation{kind: relationSeparated, sameSubject: sameSubject, days: days}
	}

	start := max(c.start, e.StartMinutes)
	end := min(c.end, e.EndMinutes)
	return relation{
		kind:        relationOverlap,
		sameSubject: sameSubject,
		days:        days,
		window:      TimeWindow{StartMinutes: start, EndMinutes: end, Label: FormatRange(start, end)},
		shape:       shapeOf(c, e),
	}
}

func shapeOf(c slot, e ScheduleItem) overlapShape {
	switch {
	case c.start == e.StartMinutes && c.end == e.EndMinutes:
		return shapeExact
	case c.start >= e.StartMinutes && c.end <= e.EndMinutes:
		return shapeCandidateInside
	case e.StartMinutes >= c.start && e.EndMinutes <= c.end:
		return shapeExistingInside
	default:
		return shapePartial
	}
}

// Detect checks a candidate against existing items in order. Every blocking
// conflict is reported; info messages are advisory and never set HasConflict.
func Detect(candidate Candidate, existing []ScheduleItem) CheckResult {
	result := newCheckResult()
	c := resolve(candidate)

	for _, e := range existing {
		rel := classify(c, e)
		switch rel.kind {
		case relationDuplicate:
			result.Conflicts = append(result.Conflicts, ConflictDetail{
				Type:        ConflictDuplicateBatch,
				Existing:    e,
				OverlapDays: []Weekday{},
				Message:     duplicateMessage(e),
			})
		case relationSameSubjectSameCenter:
			result.Conflicts = append(result.Conflicts, ConflictDetail{
				Type:        ConflictSameSubjectSameCenter,
				Existing:    e,
				OverlapDays: []Weekday{},
				Message:     sameCenterMessage(c, e),
			})
		case relationDayDisjoint:
			if rel.sameSubject {
				result.InfoMessages = append(result.InfoMessages, dualCenterMessage(c, e))
			}
		case relationAdjacent:
			result.InfoMessages = append(result.InfoMessages, adjacentMessage(c, e, rel.days))
		case relationSeparated:
			// enough gap between the two classes
		case relationOverlap:
			window := rel.window
			minutes := window.EndMinutes - window.StartMinutes
			result.Conflicts = append(result.Conflicts, ConflictDetail{
				Type:           ConflictTimeOverlap,
				Existing:       e,
				OverlapDays:    rel.days,
				OverlapMinutes: minutes,
				OverlapWindow:  &window,
				Message:        overlapMessage(c, e, rel),
			})
		}
	}

	result.HasConflict = len(result.Conflicts) > 0
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
