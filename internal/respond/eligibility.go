// internal/respond/eligibility.go
package respond

import (
	"errors"
	"fmt"

	"github.com/joshsymonds/awaybot/internal/gmail"
)

// ErrEmptyThread marks a thread that arrived with no messages; such a
// thread cannot be evaluated and is rejected without aborting the batch.
var ErrEmptyThread = errors.New("thread has no messages")

type Decision int

const (
	// DecisionSkip means the thread needs no auto-reply.
	DecisionSkip Decision = iota
	// DecisionReply means a reply should be composed from the Candidate.
	DecisionReply
)

// Candidate carries everything needed to reply to a thread: identity,
// recipient and headers come from the newest message, the snippet from the
// oldest. The newest message is the one being replied to; the oldest holds
// the original subject context.
type Candidate struct {
	MessageID gmail.MessageID
	Recipient string
	Snippet   string
	Headers   []gmail.Header
}

// Result is the outcome of evaluating one thread.
type Result struct {
	Decision  Decision
	Reason    string // populated on DecisionSkip
	Candidate Candidate
}

// projection is the per-message record the evaluation builds for every
// message not sent by the account owner.
type projection struct {
	id        gmail.MessageID
	snippet   string
	recipient string
	headers   []gmail.Header
}

// Evaluate decides whether a thread needs an auto-reply. A thread is
// skipped when the account owner started it or when any message in it
// already carries the SENT label, which is the durable already-replied
// signal.
func Evaluate(t gmail.Thread) (Result, error) {
	if len(t.Messages) == 0 {
		return Result{}, fmt.Errorf("thread %s: %w", t.ID, ErrEmptyThread)
	}
	if t.Messages[0].HasLabel(gmail.LabelSent) {
		return Result{Decision: DecisionSkip, Reason: "thread started by this account"}, nil
	}

	// Every message is projected before the already-replied check so that a
	// malformed message fails the thread regardless of where the SENT
	// marker sits.
	replied := false
	projections := make([]projection, 0, len(t.Messages))
	for _, msg := range t.Messages {
		if msg.HasLabel(gmail.LabelSent) {
			replied = true
			continue
		}
		from, ok := gmail.LookupHeader(msg.Headers, "From")
		if !ok {
			return Result{}, fmt.Errorf("thread %s: message %s has no From header", t.ID, msg.ID)
		}
		projections = append(projections, projection{
			id:        msg.ID,
			snippet:   msg.Snippet,
			recipient: from,
			headers:   msg.Headers,
		})
	}
	if replied {
		return Result{Decision: DecisionSkip, Reason: "already replied"}, nil
	}

	last := projections[len(projections)-1]
	return Result{
		Decision: DecisionReply,
		Candidate: Candidate{
			MessageID: last.id,
			Recipient: last.recipient,
			Snippet:   projections[0].snippet,
			Headers:   last.headers,
		},
	}, nil
}
