package api

import (
	"github.com/eddie-bot/eddie/internal/utils"
	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
)

// Outcome says what a status decision did with an event.
type Outcome string

const (
	// OutcomeIgnored means the event matched no transition.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeApplied means a new status label was set.
	OutcomeApplied Outcome = "applied"
	// OutcomeBlocked means the self-review guard rejected the transition.
	OutcomeBlocked Outcome = "blocked"
)

// Result is the outcome of handling one event or one command. Status is set
// when Outcome is OutcomeApplied.
type Result struct {
	Outcome Outcome
	Status  model.Status
}

func ignored() Result                    { return Result{Outcome: OutcomeIgnored} }
func applied(status model.Status) Result { return Result{Outcome: OutcomeApplied, Status: status} }
func blocked() Result                    { return Result{Outcome: OutcomeBlocked} }

// setStatus applies the transition and reports it.
func setStatus(c *Context, issue *model.Issue, status model.Status) (Result, error) {
	if err := c.GitHub.SetStatusLabel(issue, status); err != nil {
		return ignored(), err
	}
	return applied(status), nil
}

// handlePullRequestStatus is the inference table for plain pull_request
// events. Every decision is recomputed from the labels carried by this
// event's payload; nothing is cached across deliveries.
func handlePullRequestStatus(c *Context, event *github.PullRequestEvent) (Result, error) {
	issue := model.IssueFromPullRequest(event.GetRepo(), event.GetPullRequest())
	labels := utils.LabelsSet(issue.Labels)

	switch event.GetAction() {
	case model.PullRequestActionReadyForReview:
		// The opposite event (convert to draft) does not exist on the
		// webhook side, so only the ready direction is handled.
		if !labels.HasAny(
			string(model.StatusNeedsMerger),
			string(model.StatusAwaitingReviewer),
			string(model.StatusAwaitingMerger),
		) {
			return setStatus(c, issue, model.StatusNeedsReviewer)
		}
	case model.PullRequestActionSynchronize:
		// Synchronize means the PR branch moved, so prior review signals
		// are stale and the reviewer has to look again.
		if labels.HasAny(
			string(model.StatusNeedsMerger),
			string(model.StatusAwaitingChanges),
			string(model.StatusAwaitingMerger),
		) {
			return setStatus(c, issue, model.StatusAwaitingReviewer)
		}
	case model.PullRequestActionAssigned, model.PullRequestActionReviewRequested:
		if labels.Has(string(model.StatusNeedsReviewer)) {
			return setStatus(c, issue, model.StatusAwaitingReviewer)
		}
	}

	return ignored(), nil
}

// handleCommentStatus is the inference rule for a freshly created comment
// whose body carried no command.
func handleCommentStatus(c *Context, issue *model.Issue, commenter *github.User) (Result, error) {
	byAuthor := model.SameUser(issue.Author, commenter)
	labels := utils.LabelsSet(issue.Labels)

	if byAuthor && labels.Has(string(model.StatusAwaitingChanges)) {
		// A new comment by the author is probably some justification or
		// request for clarification. Action of the reviewer is needed.
		return setStatus(c, issue, model.StatusAwaitingReviewer)
	}
	if !byAuthor && labels.Has(string(model.StatusNeedsReviewer)) {
		// A new comment indicates that someone is reviewing this PR.
		return setStatus(c, issue, model.StatusAwaitingReviewer)
	}

	return ignored(), nil
}

// handleReviewStatus is the inference rule for a submitted review whose body
// carried no command.
func handleReviewStatus(c *Context, event *github.PullRequestReviewEvent) (Result, error) {
	issue := model.IssueFromPullRequest(event.GetRepo(), event.GetPullRequest())
	review := event.GetReview()

	if model.SameUser(issue.Author, review.GetUser()) {
		// A self-review is sometimes used to highlight some part of the
		// changes. It does not indicate that the PR has a reviewer or
		// that changes are necessary.
		return ignored(), nil
	}

	if review.GetState() == "changes_requested" {
		return setStatus(c, issue, model.StatusAwaitingChanges)
	}
	if utils.HasLabel(string(model.StatusNeedsReviewer), issue.Labels) {
		return setStatus(c, issue, model.StatusAwaitingReviewer)
	}

	return ignored(), nil
}
