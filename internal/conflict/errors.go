package conflict

import "fmt"

// BlockedError reports a candidate that cannot be added because the check
// found at least one blocking conflict. Result is the full check outcome.
type BlockedError struct {
	Result CheckResult
}

func (e *BlockedError) Error() string {
	switch n := len(e.Result.Conflicts); n {
	case 0:
		return "schedule conflict"
	case 1:
		return e.Result.Conflicts[0].Message
	default:
		return fmt.Sprintf("%s (and %d more conflicts)", e.Result.Conflicts[0].Message, n-1)
	}
}
