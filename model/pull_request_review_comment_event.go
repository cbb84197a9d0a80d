package model

import (
	"encoding/json"
	"io"

	"github.com/google/go-github/v31/github"
)

// PullRequestReviewCommentEventFromJSON decodes the incoming message to a github.PullRequestReviewCommentEvent
func PullRequestReviewCommentEventFromJSON(data io.Reader) *github.PullRequestReviewCommentEvent {
	decoder := json.NewDecoder(data)
	var event github.PullRequestReviewCommentEvent
	if err := decoder.Decode(&event); err != nil {
		return nil
	}

	return &event
}
