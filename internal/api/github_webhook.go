package api

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
	"github.com/gorilla/mux"
)

// initGitHubWebhook registers webhook endpoints on the given router.
func initGitHubWebhook(apiRouter *mux.Router, context *Context) {
	addContext := func(handler contextHandlerFunc) *contextHandler {
		return newContextHandler(context, handler)
	}

	webhooksRouter := apiRouter.PathPrefix("/github_event").Subrouter()
	webhooksRouter.Handle("", addContext(handleReceiveWebhook)).Methods("POST")
}

// handleReceiveWebhook responds to POST /api/github_event, when receiving an event from GitHub.
// The delivery is acknowledged once decoded; the status decision runs in its
// own goroutine so concurrent deliveries do not serialize on remote calls or
// the triage settle delay.
func handleReceiveWebhook(c *Context, w http.ResponseWriter, r *http.Request) {
	buf, _ := ioutil.ReadAll(r.Body)

	receivedHash := strings.SplitN(r.Header.Get("X-Hub-Signature"), "=", 2)
	if receivedHash[0] != "sha1" {
		c.Logger.Error("invalid webhook hash signature: SHA1")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	err := c.GitHub.ValidateSignature(receivedHash, buf)
	if err != nil {
		c.Logger.WithError(err).Error("invalid webhook signature")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	switch eventType {
	case "ping":
		pingEvent := model.PingEventFromJSON(ioutil.NopCloser(bytes.NewBuffer(buf)))
		if pingEvent == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.Logger.WithField("hookID", pingEvent.GetHookID()).Info("ping event")
		w.WriteHeader(http.StatusAccepted)
		return
	case "pull_request":
		event := model.PullRequestEventFromJSON(ioutil.NopCloser(bytes.NewBuffer(buf)))
		if event == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.Logger = c.Logger.WithField("pr", event.GetNumber())
		c.Logger.WithField("action", event.GetAction()).Info("pull request event")
		go dispatchEvent(c, func(c *Context) (Result, error) {
			return processPullRequestEvent(c, event)
		})
	case "issue_comment":
		event := model.IssueCommentEventFromJSON(ioutil.NopCloser(bytes.NewBuffer(buf)))
		if event == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.Logger = c.Logger.WithField("issue", event.GetIssue().GetNumber())
		c.Logger.WithField("action", event.GetAction()).Info("issue comment event")
		go dispatchEvent(c, func(c *Context) (Result, error) {
			return processIssueCommentEvent(c, event)
		})
	case "pull_request_review_comment":
		event := model.PullRequestReviewCommentEventFromJSON(ioutil.NopCloser(bytes.NewBuffer(buf)))
		if event == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.Logger = c.Logger.WithField("pr", event.GetPullRequest().GetNumber())
		c.Logger.WithField("action", event.GetAction()).Info("review comment event")
		go dispatchEvent(c, func(c *Context) (Result, error) {
			return processReviewCommentEvent(c, event)
		})
	case "pull_request_review":
		event := model.PullRequestReviewEventFromJSON(ioutil.NopCloser(bytes.NewBuffer(buf)))
		if event == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.Logger = c.Logger.WithField("pr", event.GetPullRequest().GetNumber())
		c.Logger.WithField("action", event.GetAction()).Info("pull request review event")
		go dispatchEvent(c, func(c *Context) (Result, error) {
			return processReviewEvent(c, event)
		})
	default:
		c.Logger.WithField("event", eventType).Info("other events not implemented")
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
}

// dispatchEvent runs one delivery to completion and logs the outcome. Remote
// failures surface here; the core itself never retries.
func dispatchEvent(c *Context, process func(c *Context) (Result, error)) {
	result, err := process(c)
	if err != nil {
		c.Logger.WithError(err).Error("failed to process event")
		return
	}
	logger := c.Logger.WithField("outcome", result.Outcome)
	if result.Outcome == OutcomeApplied {
		logger = logger.WithField("status", result.Status)
	}
	logger.Debug("event processed")
}

// processPullRequestEvent has no comment body to scan, so the inference table
// always runs.
func processPullRequestEvent(c *Context, event *github.PullRequestEvent) (Result, error) {
	return handlePullRequestStatus(c, event)
}

// processIssueCommentEvent routes a new comment either to the matched
// commands or, when the body carries none, to the inference rule. An explicit
// command always overrides the automatic behaviour.
func processIssueCommentEvent(c *Context, event *github.IssueCommentEvent) (Result, error) {
	if event.GetAction() != model.IssueCommentActionCreated {
		return ignored(), nil
	}

	issue := model.IssueFromIssue(event.GetRepo(), event.GetIssue())
	actor := event.GetComment().GetUser()

	if matched := findCommands(event.GetComment().GetBody()); len(matched) > 0 {
		return runCommands(c, matched, &commandContext{
			Issue:          issue,
			Actor:          actor,
			InstallationID: event.GetInstallation().GetID(),
		})
	}

	return handleCommentStatus(c, issue, actor)
}

// processReviewCommentEvent treats an inline diff comment like an issue
// comment; the issue read comes from the pull_request object instead.
func processReviewCommentEvent(c *Context, event *github.PullRequestReviewCommentEvent) (Result, error) {
	if event.GetAction() != model.IssueCommentActionCreated {
		return ignored(), nil
	}

	issue := model.IssueFromPullRequest(event.GetRepo(), event.GetPullRequest())
	actor := event.GetComment().GetUser()

	if matched := findCommands(event.GetComment().GetBody()); len(matched) > 0 {
		return runCommands(c, matched, &commandContext{
			Issue:          issue,
			Actor:          actor,
			InstallationID: event.GetInstallation().GetID(),
		})
	}

	return handleCommentStatus(c, issue, actor)
}

// processReviewEvent scans the review body for commands; a review with no
// body (or none matched) falls through to the review inference rule.
func processReviewEvent(c *Context, event *github.PullRequestReviewEvent) (Result, error) {
	if event.GetAction() != model.ReviewActionSubmitted {
		return ignored(), nil
	}

	if matched := findCommands(event.GetReview().GetBody()); len(matched) > 0 {
		return runCommands(c, matched, &commandContext{
			Issue:          model.IssueFromPullRequest(event.GetRepo(), event.GetPullRequest()),
			Actor:          event.GetReview().GetUser(),
			InstallationID: event.GetInstallation().GetID(),
		})
	}

	return handleReviewStatus(c, event)
}
