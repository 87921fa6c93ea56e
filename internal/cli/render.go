package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

var (
	colorHeader   = color.New(color.Bold)
	colorClear    = color.New(color.FgGreen)
	colorConflict = color.New(color.FgRed, color.Bold)
	colorInfo     = color.New(color.FgYellow)
	colorMuted    = color.New(color.FgWhite, color.Faint)
)

func printCheck(w io.Writer, batch models.Batch, result conflict.CheckResult) {
	colorHeader.Fprintf(w, "%s (%s)\n", batchTitle(batch), batch.Slot())

	if !result.HasConflict {
		colorClear.Fprintln(w, "No conflicts")
	} else {
		colorConflict.Fprintf(w, "%d conflict(s)\n", len(result.Conflicts))
		for _, detail := range result.Conflicts {
			printDetail(w, detail)
		}
	}
	printInfo(w, result.InfoMessages)
}

func printValidation(w io.Writer, result conflict.CartValidation) {
	colorHeader.Fprintln(w, "Cart validation")

	if !result.HasConflicts {
		colorClear.Fprintln(w, "No conflicts")
		printInfo(w, result.InfoMessages)
		return
	}

	colorConflict.Fprintf(w, "%d conflicting item(s): ", result.ConflictingItemIDs.Len())
	fmt.Fprintln(w, strings.Join(result.ConflictingItemIDs.IDs(), ", "))

	for _, pair := range result.CartPairConflicts {
		colorMuted.Fprintf(w, "cart %s vs cart %s\n", pair.CartItemID, pair.OtherItemID)
		printDetail(w, pair.Conflict)
	}
	for _, enrolled := range result.EnrollmentConflicts {
		colorMuted.Fprintf(w, "cart %s vs enrollment %s\n", enrolled.CartItemID, enrolled.Conflict.Existing.ID)
		printDetail(w, enrolled.Conflict)
	}
	printInfo(w, result.InfoMessages)
}

func printDetail(w io.Writer, detail conflict.ConflictDetail) {
	colorConflict.Fprintf(w, "  ✗ %s: ", detail.Type)
	fmt.Fprintln(w, detail.Message)
}

func printInfo(w io.Writer, messages []string) {
	for _, msg := range messages {
		colorInfo.Fprintf(w, "  ℹ %s\n", msg)
	}
}

func batchTitle(batch models.Batch) string {
	if subject := models.StringValue(batch.SubjectName); subject != "" {
		return subject + " - " + batch.Name
	}
	if batch.Name != "" {
		return batch.Name
	}
	return batch.ID
}
