package model

import (
	"encoding/json"
	"io"

	"github.com/google/go-github/v31/github"
)

// PullRequestReviewEventFromJSON decodes the incoming message to a github.PullRequestReviewEvent
func PullRequestReviewEventFromJSON(data io.Reader) *github.PullRequestReviewEvent {
	decoder := json.NewDecoder(data)
	var event github.PullRequestReviewEvent
	if err := decoder.Decode(&event); err != nil {
		return nil
	}

	return &event
}
