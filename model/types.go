package model

const (
	// PullRequestActionAssigned means assignees were added.
	PullRequestActionAssigned = "assigned"
	// PullRequestActionReviewRequested means review requests were added.
	PullRequestActionReviewRequested = "review_requested"
	// PullRequestActionSynchronize means the git state changed.
	PullRequestActionSynchronize = "synchronize"
	// PullRequestActionReadyForReview means the PR is no longer a draft PR.
	PullRequestActionReadyForReview = "ready_for_review"

	// IssueCommentActionCreated means the comment was created.
	IssueCommentActionCreated = "created"

	// ReviewActionSubmitted means the review was submitted.
	ReviewActionSubmitted = "submitted"
)
