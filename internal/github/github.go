package github

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// GHClient set the configuration needed.
type GHClient struct {
	GitHubClient *github.Client
	GitHubSecret string
	logger       log.FieldLogger
}

// NewGithubClient creates a new GitHub client.
func NewGithubClient(token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(oauth2.NoContext, ts)

	return github.NewClient(tc)
}

// NewGitHubConfig creates a GHClient for the given token and webhook secret.
func NewGitHubConfig(gitHubToken, gitHubSecret string, logger log.FieldLogger) *GHClient {
	return &GHClient{
		GitHubClient: NewGithubClient(gitHubToken),
		GitHubSecret: gitHubSecret,
		logger:       logger,
	}
}

// ValidateSignature validate the incoming github event.
func (g *GHClient) ValidateSignature(receivedHash []string, bodyBuffer []byte) error {
	hash := hmac.New(sha1.New, []byte(g.GitHubSecret))
	if _, err := hash.Write(bodyBuffer); err != nil {
		msg := fmt.Sprintf("Cannot compute the HMAC for request: %s\n", err)
		return errors.New(msg)
	}

	expectedHash := hex.EncodeToString(hash.Sum(nil))
	if receivedHash[1] != expectedHash {
		msg := fmt.Sprintf("Expected Hash does not match the received hash: %s\n", expectedHash)
		return errors.New(msg)
	}

	return nil
}

// CreateComment posts a new comment on the issue or pull request.
func (g *GHClient) CreateComment(issue *model.Issue, comment string) error {
	g.logger.WithField("comment", comment).Debug("Sending GitHub comment")
	_, _, err := g.GitHubClient.Issues.CreateComment(context.Background(), issue.Org, issue.Repo, issue.Number, &github.IssueComment{Body: &comment})
	if err != nil {
		return errors.Wrap(err, "Failed to send GitHub comment")
	}

	return nil
}

// SetStatusLabel replaces whatever review-status label the issue carries with
// exactly status, leaving non-status labels untouched. The add call is a
// set-union on the GitHub side, so repeating the call is harmless.
func (g *GHClient) SetStatusLabel(issue *model.Issue, status model.Status) error {
	g.logger.WithField("status", status).Debug("Setting review-status label")

	for _, label := range issue.Labels {
		name := label.GetName()
		if name == string(status) || !model.IsStatusLabel(name) {
			continue
		}
		if err := g.removeLabel(issue.Org, issue.Repo, issue.Number, name); err != nil {
			return err
		}
	}

	return g.addLabels(issue.Org, issue.Repo, issue.Number, []string{string(status)})
}

// addLabels adds GitHub labels to a specific issue/pull request.
func (g *GHClient) addLabels(org, repo string, number int, labels []string) error {
	g.logger.WithField("labels", labels).Debug("Setting GitHub label")
	_, _, err := g.GitHubClient.Issues.AddLabelsToIssue(context.Background(), org, repo, number, labels)
	if err != nil {
		return errors.Wrap(err, "Failed to set GitHub labels")
	}

	return nil
}

// removeLabel removes a GitHub label from a specific issue/pull request.
func (g *GHClient) removeLabel(org, repo string, number int, label string) error {
	g.logger.WithField("label", label).Debug("Removing GitHub label")
	_, err := g.GitHubClient.Issues.RemoveLabelForIssue(context.Background(), org, repo, number, label)
	if err != nil {
		return errors.Wrap(err, "Failed to remove GitHub label")
	}

	return nil
}
