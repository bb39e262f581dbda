package shares

import "github.com/danielcastillo/dealerdesk-backend/pkg/enums"

// CanTransition reports whether a share may move from one status to another.
// A nil from means the sale is not shared yet; accepted and rejected are
// terminal.
func CanTransition(from *enums.SharedStatus, to enums.SharedStatus) bool {
	if !to.IsValid() {
		return false
	}
	if from == nil {
		return to == enums.SharedStatusPending
	}
	if from.IsTerminal() {
		return false
	}
	// Pending accepts a response but never re-pends in place; re-pending goes
	// through a recipient change on the sale itself.
	return *from == enums.SharedStatusPending && to.IsTerminal()
}
