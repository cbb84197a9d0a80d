package api

import (
	"net/http"

	"github.com/eddie-bot/eddie/internal/triage"
	"github.com/eddie-bot/eddie/model"

	"github.com/sirupsen/logrus"
)

// GitHub describes the remote capabilities the status core consumes. Both
// operations are single network calls; SetStatusLabel is idempotent and
// exclusive with respect to the review-status vocabulary.
type GitHub interface {
	ValidateSignature(receivedHash []string, bodyBuffer []byte) error
	SetStatusLabel(issue *model.Issue, status model.Status) error
	CreateComment(issue *model.Issue, comment string) error
}

// Context provides the API with all necessary data and interfaces for responding to requests.
//
// It is cloned before each request, allowing per-request changes such as logger annotations.
type Context struct {
	GitHub    GitHub
	Runners   *triage.Registry
	RequestID string
	Logger    logrus.FieldLogger
}

// Clone creates a shallow copy of context, allowing clones to apply per-request changes.
func (c *Context) Clone() *Context {
	return &Context{
		GitHub:  c.GitHub,
		Runners: c.Runners,
		Logger:  c.Logger,
	}
}

type contextHandlerFunc func(c *Context, w http.ResponseWriter, r *http.Request)

type contextHandler struct {
	context *Context
	handler contextHandlerFunc
}

func newContextHandler(context *Context, handler contextHandlerFunc) *contextHandler {
	return &contextHandler{
		context: context,
		handler: handler,
	}
}

func (h *contextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	context := h.context.Clone()
	context.RequestID = model.NewID()
	context.Logger = context.Logger.WithFields(logrus.Fields{
		"path":    r.URL.Path,
		"request": context.RequestID,
	})

	h.handler(context, w, r)
}
