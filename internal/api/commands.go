package api

import (
	"sort"
	"strings"

	"github.com/eddie-bot/eddie/model"

	"github.com/google/go-github/v31/github"
)

// noSelfReviewText is posted verbatim when a PR author tries to fast-track
// their own PR with one of the merger commands.
const noSelfReviewText = "The PR author cannot set the status to `needs_merger`. Please wait for an external review.\n\n" +
	"If you are not the PR author and you are reading this, please review the [usage](https://github.com/eddie-bot/eddie/blob/deployed/USAGE.md) of this bot. " +
	"You may be able to help. Please make an honest attempt to resolve all outstanding issues before setting to `needs_merger`."

// commandContext carries everything a command handler may act on: the issue
// the command was posted on, who posted it, and the installation the issue
// belongs to.
type commandContext struct {
	Issue          *model.Issue
	Actor          *github.User
	InstallationID int64
}

type commandHandler func(c *Context, cmd *commandContext) (Result, error)

type command struct {
	trigger string
	handler commandHandler
}

// commands is the process-wide command table, registered once and read-only
// afterwards. Triggers are matched as literal substrings of the comment or
// review body.
var commands = []command{
	{"/status needs_reviewer", needsReviewerCommand},
	{"/status awaiting_changes", awaitingChangesCommand},
	{"/status awaiting_reviewer", awaitingReviewerCommand},
	{"/status needs_merger", needsMergerCommand},
	{"/status awaiting_merger", awaitingMergerCommand},
}

// findCommands scans body for every non-overlapping occurrence of a
// registered trigger and returns the matches in order of appearance. A pure
// scan; callers use a non-empty result both to run the handlers and to
// suppress the automatic inference rules for the event.
func findCommands(body string) []command {
	type match struct {
		pos int
		cmd command
	}

	var matches []match
	for _, cmd := range commands {
		rest := body
		offset := 0
		for {
			i := strings.Index(rest, cmd.trigger)
			if i < 0 {
				break
			}
			matches = append(matches, match{pos: offset + i, cmd: cmd})
			rest = rest[i+len(cmd.trigger):]
			offset += i + len(cmd.trigger)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	found := make([]command, 0, len(matches))
	for _, m := range matches {
		found = append(found, m.cmd)
	}
	return found
}

// blockSelfReview posts the rejection comment when the command actor is the
// issue author. It reports whether the command was blocked.
func blockSelfReview(c *Context, cmd *commandContext) (bool, error) {
	if !model.SameUser(cmd.Issue.Author, cmd.Actor) {
		return false, nil
	}
	if err := c.GitHub.CreateComment(cmd.Issue, noSelfReviewText); err != nil {
		return true, err
	}
	return true, nil
}

func needsReviewerCommand(c *Context, cmd *commandContext) (Result, error) {
	result, err := setStatus(c, cmd.Issue, model.StatusNeedsReviewer)
	if err != nil {
		return result, err
	}
	// Freeing up a PR for review makes work newly assignable.
	return result, c.Runners.Notify(cmd.InstallationID)
}

func awaitingChangesCommand(c *Context, cmd *commandContext) (Result, error) {
	return setStatus(c, cmd.Issue, model.StatusAwaitingChanges)
}

func awaitingReviewerCommand(c *Context, cmd *commandContext) (Result, error) {
	return setStatus(c, cmd.Issue, model.StatusAwaitingReviewer)
}

func needsMergerCommand(c *Context, cmd *commandContext) (Result, error) {
	if didBlock, err := blockSelfReview(c, cmd); didBlock {
		return blocked(), err
	}
	result, err := setStatus(c, cmd.Issue, model.StatusNeedsMerger)
	if err != nil {
		return result, err
	}
	return result, c.Runners.Notify(cmd.InstallationID)
}

func awaitingMergerCommand(c *Context, cmd *commandContext) (Result, error) {
	if didBlock, err := blockSelfReview(c, cmd); didBlock {
		return blocked(), err
	}
	return setStatus(c, cmd.Issue, model.StatusAwaitingMerger)
}

// runCommands executes every matched command in order of appearance. When two
// commands conflict, the textually later one wins since each handler issues
// its own label-set call. The first remote failure stops the sequence.
func runCommands(c *Context, matched []command, cmd *commandContext) (Result, error) {
	result := ignored()
	for _, m := range matched {
		var err error
		result, err = m.handler(c, cmd)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}
