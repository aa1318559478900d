// internal/respond/service.go
package respond

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshsymonds/awaybot/internal/gmail"
)

// Spec configures one responder cycle.
type Spec struct {
	MarkerLabel    string // label applied to messages that got an auto-reply
	Since          string // vacation start, mm/dd/yyyy, passed to the Gmail after: operand
	From           string // sender identity for composed replies
	Body           string // vacation notice text
	DefaultSubject string // subject fallback for threads without one
	MaxThreads     int    // cap on threads handled per cycle; 0 means no cap
	PageSize       int
	DryRun         bool
}

// Service runs responder cycles against a Gmail account.
type Service struct {
	Client gmail.Client
	Log    *slog.Logger
	Rate   interface{ Wait(context.Context) error } // small interface
	Clock  func() time.Time
}

// NewService constructs a Service with sane defaults.
func NewService(client gmail.Client, limiter interface{ Wait(context.Context) error }, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Client: client,
		Log:    logger,
		Rate:   limiter,
		Clock:  time.Now,
	}
}

// Stats summarizes one responder cycle.
type Stats struct {
	StartedAt time.Time     `json:"started_at"`
	Scanned   int           `json:"scanned"`
	Replied   int           `json:"replied"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	LabelID   gmail.LabelID `json:"label_id,omitempty"`
}

// RunCycle performs a single pass: resolve the marker label, fetch unread
// threads received after the cutoff, and reply to the ones that have not
// been answered yet. Failures on individual threads are logged and counted;
// only collaborator failures that precede the per-thread loop abandon the
// cycle.
func (s *Service) RunCycle(ctx context.Context, spec Spec) (Stats, error) {
	stats := Stats{StartedAt: s.Clock()}

	// The marker label id lives only for this cycle; it is re-resolved on
	// every run rather than cached across cycles.
	var labelID gmail.LabelID
	if !spec.DryRun {
		lid, err := s.ensureLabel(ctx, spec.MarkerLabel)
		if err != nil {
			return stats, err
		}
		labelID = lid
		stats.LabelID = lid
	}

	ids, err := s.fetchThreadIDs(ctx, spec)
	if err != nil {
		return stats, err
	}
	if len(ids) == 0 {
		s.Log.Info("no unread threads since cutoff", "since", spec.Since)
		return stats, nil
	}

	for _, id := range ids {
		stats.Scanned++
		if err := s.handleThread(ctx, spec, labelID, id, &stats); err != nil {
			if ctx.Err() != nil {
				return stats, fmt.Errorf("handle thread %s: %w", id, err)
			}
			stats.Failed++
			s.Log.Error("thread failed", "thread", id, "error", err)
		}
	}
	return stats, nil
}

// ensureLabel resolves the marker label by name, creating it when absent.
// An account with zero labels counts as not-found. Creation is not guarded
// against concurrent creators; a race can duplicate the label.
func (s *Service) ensureLabel(ctx context.Context, name string) (gmail.LabelID, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	byName, _, err := s.Client.ListLabels(ctx)
	if err != nil {
		return "", fmt.Errorf("list labels: %w", err)
	}
	if id, ok := byName[name]; ok {
		return id, nil
	}
	s.Log.Info("marker label missing, creating", "label", name)
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	id, err := s.Client.CreateLabel(ctx, name)
	if err != nil {
		return "", fmt.Errorf("create label %q: %w", name, err)
	}
	return id, nil
}

func (s *Service) fetchThreadIDs(ctx context.Context, spec Spec) ([]gmail.ThreadID, error) {
	q := gmail.Query{Raw: fmt.Sprintf("is:unread after:%s", spec.Since)}
	pageSize := spec.PageSize
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 100
	}

	var (
		ids   []gmail.ThreadID
		token string
	)
	for {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}
		page, err := s.Client.ListThreads(ctx, q, token, pageSize)
		if err != nil {
			return nil, fmt.Errorf("list threads: %w", err)
		}
		ids = append(ids, page.IDs...)
		if spec.MaxThreads > 0 && len(ids) >= spec.MaxThreads {
			ids = ids[:spec.MaxThreads]
			break
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	return ids, nil
}

func (s *Service) handleThread(
	ctx context.Context,
	spec Spec,
	labelID gmail.LabelID,
	id gmail.ThreadID,
	stats *Stats,
) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	thread, err := s.Client.GetThread(ctx, id)
	if err != nil {
		return fmt.Errorf("get thread: %w", err)
	}

	result, err := Evaluate(thread)
	if err != nil {
		if errors.Is(err, ErrEmptyThread) {
			return err
		}
		return fmt.Errorf("evaluate: %w", err)
	}
	if result.Decision == DecisionSkip {
		stats.Skipped++
		s.Log.Debug("skipping thread", "thread", id, "reason", result.Reason)
		return nil
	}

	reply := Compose(result.Candidate, ComposeOptions{
		From:           spec.From,
		Body:           spec.Body,
		DefaultSubject: spec.DefaultSubject,
	})
	if spec.DryRun {
		stats.Replied++
		s.Log.Info("dry-run: would reply", "thread", id, "to", reply.To, "subject", reply.Subject)
		return nil
	}

	if err := s.wait(ctx); err != nil {
		return err
	}
	if _, err := s.Client.Send(ctx, reply.Raw); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	// Tag-then-mark-read after a successful send. If tagging fails here the
	// reply has already gone out; the thread will look eligible again next
	// cycle, so this is an at-least-once-send risk.
	if err := s.wait(ctx); err != nil {
		return err
	}
	ops := gmail.ModifyOps{
		AddLabels:    []gmail.LabelID{labelID},
		RemoveLabels: []gmail.LabelID{gmail.LabelUnread},
	}
	if err := s.Client.Modify(ctx, result.Candidate.MessageID, ops); err != nil {
		return fmt.Errorf("reply sent but tagging failed: %w", err)
	}

	stats.Replied++
	s.Log.Info("replied", "thread", id, "to", reply.To, "subject", reply.Subject)
	return nil
}

// Watch runs cycles forever: one immediately, then one per interval tick.
// Each cycle is wrapped in an error boundary so a failed cycle never stops
// the timer; the next tick is the de facto retry. Only context
// cancellation ends the loop.
func (s *Service) Watch(ctx context.Context, spec Spec, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := s.RunCycle(ctx, spec)
		if err != nil {
			s.Log.Error("cycle failed", "error", err)
		} else {
			s.Log.Info("cycle complete",
				"scanned", stats.Scanned,
				"replied", stats.Replied,
				"skipped", stats.Skipped,
				"failed", stats.Failed,
			)
		}

		select {
		case <-ctx.Done():
			s.Log.Info("shutting down")
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.Rate == nil {
		return nil
	}
	if err := s.Rate.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
