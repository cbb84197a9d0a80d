package model

// Status is a review-status label. An issue carries at most one of these at a
// time; StatusNone means the issue is not in the review workflow.
type Status string

const (
	// StatusNeedsReviewer means the PR is ready and no reviewer has picked it up.
	StatusNeedsReviewer Status = "needs_reviewer"
	// StatusAwaitingReviewer means a reviewer is engaged and the ball is on their side.
	StatusAwaitingReviewer Status = "awaiting_reviewer"
	// StatusAwaitingChanges means a reviewer asked the author for changes.
	StatusAwaitingChanges Status = "awaiting_changes"
	// StatusNeedsMerger means the PR is reviewed and waits for someone with merge rights.
	StatusNeedsMerger Status = "needs_merger"
	// StatusAwaitingMerger means a merger is engaged.
	StatusAwaitingMerger Status = "awaiting_merger"
	// StatusNone is the absence of a review-status label.
	StatusNone Status = ""
)

// Statuses is the full review-status vocabulary.
var Statuses = []Status{
	StatusNeedsReviewer,
	StatusAwaitingReviewer,
	StatusAwaitingChanges,
	StatusNeedsMerger,
	StatusAwaitingMerger,
}

// IsStatusLabel reports whether the label name belongs to the review-status
// vocabulary.
func IsStatusLabel(name string) bool {
	for _, s := range Statuses {
		if name == string(s) {
			return true
		}
	}
	return false
}
