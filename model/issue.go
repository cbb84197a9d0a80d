package model

import (
	"github.com/google/go-github/v31/github"
)

// Issue is the transient, per-event read of the issue or pull request a
// webhook delivery refers to. It is built from the event payload at dispatch
// time and never cached across events; the remote label set stays the single
// source of truth.
type Issue struct {
	Org    string
	Repo   string
	Number int
	Author *github.User
	Labels []*github.Label
}

// IssueFromIssue builds an Issue from the issue object of an issue_comment
// event.
func IssueFromIssue(repo *github.Repository, issue *github.Issue) *Issue {
	return &Issue{
		Org:    repo.GetOwner().GetLogin(),
		Repo:   repo.GetName(),
		Number: issue.GetNumber(),
		Author: issue.GetUser(),
		Labels: issue.Labels,
	}
}

// IssueFromPullRequest builds an Issue from the pull_request object of a
// pull_request, pull_request_review or pull_request_review_comment event.
func IssueFromPullRequest(repo *github.Repository, pr *github.PullRequest) *Issue {
	return &Issue{
		Org:    repo.GetOwner().GetLogin(),
		Repo:   repo.GetName(),
		Number: pr.GetNumber(),
		Author: pr.GetUser(),
		Labels: pr.Labels,
	}
}

// SameUser compares two principals by ID. Logins are not compared; they are
// neither stable nor guaranteed unique across renames.
func SameUser(a, b *github.User) bool {
	if a == nil || b == nil {
		return false
	}
	return a.GetID() == b.GetID()
}
