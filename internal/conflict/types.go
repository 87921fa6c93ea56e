// Package conflict decides whether weekly recurring coaching slots collide
// with a student's enrollments and cart selections. Every function is pure:
// inputs are explicit snapshots and identical inputs yield identical output.
package conflict

// Source tags where a ScheduleItem came from.
type Source string

// Schedule item sources.
const (
	SourceCart       Source = "cart"
	SourceEnrollment Source = "enrollment"
)

// ScheduleItem is the uniform weekly slot the detector compares.
// StartMinutes is inclusive and EndMinutes exclusive.
type ScheduleItem struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	BusinessID   string    `json:"businessId"`
	BusinessName string    `json:"businessName"`
	SubjectID    string    `json:"subjectId,omitempty"`
	SubjectName  string    `json:"subjectName,omitempty"`
	BatchID      string    `json:"batchId,omitempty"`
	ScheduleDays []Weekday `json:"scheduleDays"`
	StartMinutes int       `json:"startMinutes"`
	EndMinutes   int       `json:"endMinutes"`
	Source       Source    `json:"source"`
}

// Candidate is the slot being evaluated for addition. Times are "HH:MM".
type Candidate struct {
	Label        string    `json:"label,omitempty"`
	BatchID      string    `json:"batchId,omitempty"`
	SubjectID    string    `json:"subjectId,omitempty"`
	SubjectName  string    `json:"subjectName,omitempty"`
	BusinessID   string    `json:"businessId"`
	BusinessName string    `json:"businessName"`
	ScheduleDays []Weekday `json:"scheduleDays"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
}

// ConflictType classifies a blocking conflict.
type ConflictType string

// Blocking conflict types.
const (
	ConflictDuplicateBatch        ConflictType = "duplicate_batch"
	ConflictSameSubjectSameCenter ConflictType = "same_subject_same_center"
	ConflictTimeOverlap           ConflictType = "time_overlap"
)

// TimeWindow is a half-open minute range with its display form.
type TimeWindow struct {
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
	Label        string `json:"label"`
}

// ConflictDetail explains one blocking conflict against an existing item.
type ConflictDetail struct {
	Type           ConflictType `json:"type"`
	Existing       ScheduleItem `json:"existing"`
	OverlapDays    []Weekday    `json:"overlapDays"`
	OverlapMinutes int          `json:"overlapMinutes"`
	OverlapWindow  *TimeWindow  `json:"overlapWindow,omitempty"`
	Message        string       `json:"message"`
}

// CheckResult is the outcome of checking one candidate. InfoMessages never block.
type CheckResult struct {
	HasConflict  bool             `json:"hasConflict"`
	Conflicts    []ConflictDetail `json:"conflicts"`
	InfoMessages []string         `json:"infoMessages"`
}

func newCheckResult() CheckResult {
	return CheckResult{Conflicts: []ConflictDetail{}, InfoMessages: []string{}}
}
