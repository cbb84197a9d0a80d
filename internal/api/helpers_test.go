package api

import (
	"io/ioutil"

	"github.com/eddie-bot/eddie/internal/triage"
	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

const testInstallationID int64 = 7

// fakeGitHub records remote calls and mirrors the exclusive-label semantics
// of the real client, so tests can assert on the final label set.
type fakeGitHub struct {
	labels   sets.String
	setCalls []model.Status
	comments []string

	sigErr error
	setErr error
}

func newFakeGitHub(labels ...string) *fakeGitHub {
	return &fakeGitHub{labels: sets.NewString(labels...)}
}

func (f *fakeGitHub) ValidateSignature(receivedHash []string, bodyBuffer []byte) error {
	return f.sigErr
}

func (f *fakeGitHub) SetStatusLabel(issue *model.Issue, status model.Status) error {
	if f.setErr != nil {
		return f.setErr
	}
	for _, name := range f.labels.List() {
		if model.IsStatusLabel(name) && name != string(status) {
			f.labels.Delete(name)
		}
	}
	f.labels.Insert(string(status))
	f.setCalls = append(f.setCalls, status)
	return nil
}

func (f *fakeGitHub) CreateComment(issue *model.Issue, comment string) error {
	f.comments = append(f.comments, comment)
	return nil
}

// fakeRunner counts RunSoon calls.
type fakeRunner struct {
	runs int
}

func (r *fakeRunner) RunSoon() {
	r.runs++
}

func newTestContext(gh *fakeGitHub) (*Context, *fakeRunner) {
	runner := &fakeRunner{}
	runners := triage.NewRegistry()
	runners.SettleDelay = 0
	runners.Register(testInstallationID, runner)

	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)

	return &Context{
		GitHub:  gh,
		Runners: runners,
		Logger:  logger,
	}, runner
}

func label(name string) *github.Label {
	return &github.Label{Name: github.String(name)}
}

func labels(names ...string) []*github.Label {
	var out []*github.Label
	for _, name := range names {
		out = append(out, label(name))
	}
	return out
}

func user(id int64) *github.User {
	return &github.User{ID: github.Int64(id)}
}

func testRepo() *github.Repository {
	return &github.Repository{
		Owner: &github.User{Login: github.String("eddie-bot")},
		Name:  github.String("spaceship"),
	}
}

func testPullRequest(authorID int64, labelNames ...string) *github.PullRequest {
	return &github.PullRequest{
		Number: github.Int(42),
		User:   user(authorID),
		Labels: labels(labelNames...),
	}
}

func testIssue(authorID int64, labelNames ...string) *github.Issue {
	return &github.Issue{
		Number: github.Int(42),
		User:   user(authorID),
		Labels: labels(labelNames...),
	}
}

func installation() *github.Installation {
	return &github.Installation{ID: github.Int64(testInstallationID)}
}
