package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Vertical identifies the kind of venue an offering belongs to.
type Vertical string

// Supported marketplace verticals.
const (
	VerticalCoaching Vertical = "coaching"
	VerticalGym      Vertical = "gym"
	VerticalLibrary  Vertical = "library"
)

func (v Vertical) String() string {
	return string(v)
}

// Is reports whether v matches other ignoring case and surrounding spaces.
func (v Vertical) Is(other Vertical) bool {
	return strings.EqualFold(strings.TrimSpace(string(v)), string(other))
}

// PassStatus represents the lifecycle of a purchased pass or enrollment.
type PassStatus string

// Possible pass statuses.
const (
	PassStatusActive    PassStatus = "active"
	PassStatusReserved  PassStatus = "reserved"
	PassStatusPaused    PassStatus = "paused"
	PassStatusExpired   PassStatus = "expired"
	PassStatusCancelled PassStatus = "cancelled"
)

// Committed reports whether the status holds a seat that competes for the student's time.
func (s PassStatus) Committed() bool {
	switch PassStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case PassStatusActive, PassStatusReserved:
		return true
	default:
		return false
	}
}

// CartItem is a tentative, unpaid selection in a student's cart.
type CartItem struct {
	ID           string         `db:"id" json:"id"`
	StudentID    string         `db:"student_id" json:"studentId"`
	Vertical     Vertical       `db:"vertical" json:"vertical"`
	BusinessID   string         `db:"business_id" json:"businessId"`
	BusinessName string         `db:"business_name" json:"businessName"`
	SubjectID    *string        `db:"subject_id" json:"subjectId,omitempty"`
	SubjectName  *string        `db:"subject_name" json:"subjectName,omitempty"`
	BatchID      *string        `db:"batch_id" json:"batchId,omitempty"`
	BatchName    *string        `db:"batch_name" json:"batchName,omitempty"`
	ScheduleDays pq.StringArray `db:"schedule_days" json:"scheduleDays"`
	TimeSlot     string         `db:"time_slot" json:"timeSlot"`
	AddedAt      time.Time      `db:"added_at" json:"addedAt"`
}

// Pass is a committed, paid seat (gym, library or coaching) with a lifecycle status.
type Pass struct {
	ID           string         `db:"id" json:"id"`
	StudentID    string         `db:"student_id" json:"studentId"`
	Vertical     Vertical       `db:"vertical" json:"vertical"`
	BusinessID   string         `db:"business_id" json:"businessId"`
	BusinessName string         `db:"business_name" json:"businessName"`
	SubjectID    *string        `db:"subject_id" json:"subjectId,omitempty"`
	SubjectName  *string        `db:"subject_name" json:"subjectName,omitempty"`
	BatchID      *string        `db:"batch_id" json:"batchId,omitempty"`
	BatchName    *string        `db:"batch_name" json:"batchName,omitempty"`
	ScheduleDays pq.StringArray `db:"schedule_days" json:"scheduleDays"`
	TimeSlot     string         `db:"time_slot" json:"timeSlot"`
	Status       PassStatus     `db:"status" json:"status"`
	StartsOn     *time.Time     `db:"starts_on" json:"startsOn,omitempty"`
	EndsOn       *time.Time     `db:"ends_on" json:"endsOn,omitempty"`
}

// Batch is a recurring coaching offering published by a business.
type Batch struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	BusinessID      string         `db:"business_id" json:"businessId"`
	BusinessName    string         `db:"business_name" json:"businessName"`
	SubjectID       *string        `db:"subject_id" json:"subjectId,omitempty"`
	SubjectName     *string        `db:"subject_name" json:"subjectName,omitempty"`
	InstructorName  string         `db:"instructor_name" json:"instructorName,omitempty"`
	SchedulePattern string         `db:"schedule_pattern" json:"schedulePattern"`
	CustomDays      pq.StringArray `db:"custom_days" json:"customDays,omitempty"`
	StartTime       string         `db:"start_time" json:"startTime"`
	EndTime         string         `db:"end_time" json:"endTime"`
}

// Slot renders the batch time range in the "HH:MM-HH:MM" cart format.
func (b Batch) Slot() string {
	return strings.TrimSpace(b.StartTime) + "-" + strings.TrimSpace(b.EndTime)
}

// StringValue dereferences optional text columns.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
