package dto

import (
	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

// CandidateInput describes a slot to evaluate without looking up a published batch.
type CandidateInput struct {
	Label        string   `json:"label"`
	BatchID      string   `json:"batchId"`
	SubjectID    string   `json:"subjectId"`
	SubjectName  string   `json:"subjectName"`
	BusinessID   string   `json:"businessId" validate:"required"`
	BusinessName string   `json:"businessName"`
	ScheduleDays []string `json:"scheduleDays" validate:"required,min=1"`
	StartTime    string   `json:"startTime" validate:"required"`
	EndTime      string   `json:"endTime" validate:"required"`
}

// EvaluateRequest checks a candidate against an explicit cart and pass list.
type EvaluateRequest struct {
	Candidate CandidateInput    `json:"candidate"`
	Cart      []models.CartItem `json:"cart"`
	Passes    []models.Pass     `json:"passes"`
}

// CartSnapshotRequest validates an explicit cart against explicit passes.
type CartSnapshotRequest struct {
	Cart   []models.CartItem `json:"cart"`
	Passes []models.Pass     `json:"passes"`
}

// AddCartItemRequest adds an offering to the student's cart. Coaching items
// reference a published batch; other verticals carry their own slot.
type AddCartItemRequest struct {
	Vertical     models.Vertical `json:"vertical" validate:"required,oneof=coaching gym library"`
	BatchID      string          `json:"batchId" validate:"required_if=Vertical coaching"`
	BusinessID   string          `json:"businessId" validate:"required_unless=Vertical coaching"`
	BusinessName string          `json:"businessName" validate:"required_unless=Vertical coaching"`
	ScheduleDays []string        `json:"scheduleDays"`
	TimeSlot     string          `json:"timeSlot"`
}

// CartView is the cart listing with its current validation attached.
type CartView struct {
	Items      []models.CartItem       `json:"items"`
	MaxItems   int                     `json:"maxItems"`
	Validation conflict.CartValidation `json:"validation"`
}
