package github

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}

func sign(secret string, body []byte) []string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return []string{"sha1", hex.EncodeToString(mac.Sum(nil))}
}

func TestValidateSignature(t *testing.T) {
	client := NewGitHubConfig("token", "hunter2", testLogger())
	body := []byte(`{"action": "created"}`)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, client.ValidateSignature(sign("hunter2", body), body))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.Error(t, client.ValidateSignature(sign("wrong", body), body))
	})

	t.Run("tampered body", func(t *testing.T) {
		assert.Error(t, client.ValidateSignature(sign("hunter2", body), []byte("{}")))
	})
}

// newRecordingClient points a GHClient at a test server that records every
// request to the labels endpoints.
func newRecordingClient(t *testing.T, requests *[]string) (*GHClient, *httptest.Server) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/comments"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, "{}")
		default:
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, "[]")
		}
	})
	ts := httptest.NewServer(mux)

	ghClient := github.NewClient(nil)
	baseURL, err := url.Parse(ts.URL + "/")
	require.NoError(t, err)
	ghClient.BaseURL = baseURL

	return &GHClient{
		GitHubClient: ghClient,
		GitHubSecret: "hunter2",
		logger:       testLogger(),
	}, ts
}

func testIssueRead(labelNames ...string) *model.Issue {
	var labels []*github.Label
	for _, name := range labelNames {
		labels = append(labels, &github.Label{Name: github.String(name)})
	}
	return &model.Issue{
		Org:    "eddie-bot",
		Repo:   "spaceship",
		Number: 42,
		Author: &github.User{ID: github.Int64(1)},
		Labels: labels,
	}
}

func TestSetStatusLabelSwapsExclusively(t *testing.T) {
	var requests []string
	client, ts := newRecordingClient(t, &requests)
	defer ts.Close()

	err := client.SetStatusLabel(testIssueRead("kind/bug", "awaiting_changes", "needs_merger"), model.StatusAwaitingReviewer)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"DELETE /repos/eddie-bot/spaceship/issues/42/labels/awaiting_changes",
		"DELETE /repos/eddie-bot/spaceship/issues/42/labels/needs_merger",
		"POST /repos/eddie-bot/spaceship/issues/42/labels",
	}, requests)
}

func TestSetStatusLabelLeavesCurrentStatusAlone(t *testing.T) {
	var requests []string
	client, ts := newRecordingClient(t, &requests)
	defer ts.Close()

	err := client.SetStatusLabel(testIssueRead("awaiting_reviewer"), model.StatusAwaitingReviewer)
	require.NoError(t, err)

	// Only the additive call remains; adding an existing label is a set-union
	// on the GitHub side.
	assert.Equal(t, []string{
		"POST /repos/eddie-bot/spaceship/issues/42/labels",
	}, requests)
}

func TestCreateComment(t *testing.T) {
	var requests []string
	client, ts := newRecordingClient(t, &requests)
	defer ts.Close()

	err := client.CreateComment(testIssueRead(), "please take another look")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /repos/eddie-bot/spaceship/issues/42/comments",
	}, requests)
}
