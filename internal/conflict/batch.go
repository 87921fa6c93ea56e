package conflict

import "github.com/noah-isme/coaching-conflict-api/internal/models"

// CheckBatch answers whether adding batch would conflict with the current cart
// and committed passes. Nothing is mutated. A batch whose days cannot be
// resolved has nothing to compare and reports no conflict.
func CheckBatch(batch models.Batch, cart []models.CartItem, passes []models.Pass) CheckResult {
	days := ResolveDays(batch.SchedulePattern, batch.CustomDays)
	if len(days) == 0 {
		return newCheckResult()
	}

	existing := append(FromCartItems(cart), FromPasses(passes)...)
	return Detect(CandidateFromBatch(batch, days), existing)
}
