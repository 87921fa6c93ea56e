package conflict

import (
	"strings"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

// FromCartItem maps a cart entry into a ScheduleItem. It returns false for
// entries that cannot describe a weekly coaching slot: other verticals, no
// recognised days, or a missing or malformed "HH:MM-HH:MM" slot.
func FromCartItem(item models.CartItem) (ScheduleItem, bool) {
	if !item.Vertical.Is(models.VerticalCoaching) {
		return ScheduleItem{}, false
	}
	return buildItem(slotRecord{
		id:           item.ID,
		businessID:   item.BusinessID,
		businessName: item.BusinessName,
		subjectID:    models.StringValue(item.SubjectID),
		subjectName:  models.StringValue(item.SubjectName),
		batchID:      models.StringValue(item.BatchID),
		batchName:    models.StringValue(item.BatchName),
		days:         item.ScheduleDays,
		slot:         item.TimeSlot,
	}, SourceCart)
}

// FromPass maps an enrollment into a ScheduleItem. Only active and reserved
// coaching passes take part in conflict checks; everything else yields false.
func FromPass(pass models.Pass) (ScheduleItem, bool) {
	if !pass.Vertical.Is(models.VerticalCoaching) || !pass.Status.Committed() {
		return ScheduleItem{}, false
	}
	return buildItem(slotRecord{
		id:           pass.ID,
		businessID:   pass.BusinessID,
		businessName: pass.BusinessName,
		subjectID:    models.StringValue(pass.SubjectID),
		subjectName:  models.StringValue(pass.SubjectName),
		batchID:      models.StringValue(pass.BatchID),
		batchName:    models.StringValue(pass.BatchName),
		days:         pass.ScheduleDays,
		slot:         pass.TimeSlot,
	}, SourceEnrollment)
}

// FromPasses normalises every usable pass, preserving input order.
func FromPasses(passes []models.Pass) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(passes))
	for _, pass := range passes {
		if item, ok := FromPass(pass); ok {
			items = append(items, item)
		}
	}
	return items
}

// FromCartItems normalises every usable cart entry, preserving input order.
func FromCartItems(cart []models.CartItem) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(cart))
	for _, entry := range cart {
		if item, ok := FromCartItem(entry); ok {
			items = append(items, item)
		}
	}
	return items
}

// CandidateFromItem turns a normalised item back into a Candidate so cart
// entries can be checked against each other.
func CandidateFromItem(item ScheduleItem) Candidate {
	days := make([]Weekday, len(item.ScheduleDays))
	copy(days, item.ScheduleDays)
	return Candidate{
		Label:        item.Label,
		BatchID:      item.BatchID,
		SubjectID:    item.SubjectID,
		SubjectName:  item.SubjectName,
		BusinessID:   item.BusinessID,
		BusinessName: item.BusinessName,
		ScheduleDays: days,
		StartTime:    clock(item.StartMinutes),
		EndTime:      clock(item.EndMinutes),
	}
}

// CandidateFromBatch builds the candidate for a published batch on the given days.
func CandidateFromBatch(batch models.Batch, days []Weekday) Candidate {
	subjectName := models.StringValue(batch.SubjectName)
	return Candidate{
		Label:        itemLabel(subjectName, batch.Name, batch.BusinessName),
		BatchID:      strings.TrimSpace(batch.ID),
		SubjectID:    models.StringValue(batch.SubjectID),
		SubjectName:  subjectName,
		BusinessID:   batch.BusinessID,
		BusinessName: batch.BusinessName,
		ScheduleDays: days,
		StartTime:    strings.TrimSpace(batch.StartTime),
		EndTime:      strings.TrimSpace(batch.EndTime),
	}
}

type slotRecord struct {
	id           string
	businessID   string
	businessName string
	subjectID    string
	subjectName  string
	batchID      string
	batchName    string
	days         []string
	slot         string
}

func buildItem(rec slotRecord, source Source) (ScheduleItem, bool) {
	days := NormalizeDays(rec.days)
	if len(days) == 0 {
		return ScheduleItem{}, false
	}
	start, end, ok := ParseSlot(rec.slot)
	if !ok {
		return ScheduleItem{}, false
	}
	return ScheduleItem{
		ID:           rec.id,
		Label:        itemLabel(rec.subjectName, rec.batchName, rec.businessName),
		BusinessID:   rec.businessID,
		BusinessName: rec.businessName,
		SubjectID:    rec.subjectID,
		SubjectName:  rec.subjectName,
		BatchID:      rec.batchID,
		ScheduleDays: days,
		StartMinutes: start,
		EndMinutes:   end,
		Source:       source,
	}, true
}

// itemLabel is "Subject - Batch", degrading to whichever part is known.
func itemLabel(subjectName, batchName, businessName string) string {
	subjectName = strings.TrimSpace(subjectName)
	batchName = strings.TrimSpace(batchName)
	switch {
	case subjectName != "" && batchName != "":
		return subjectName + " - " + batchName
	case subjectName != "":
		return subjectName
	case batchName != "":
		return batchName
	default:
		return strings.TrimSpace(businessName)
	}
}
