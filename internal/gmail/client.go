package gmail

import "context"

// Client is the narrow Gmail surface required by awaybot.
type Client interface {
	ListThreads(ctx context.Context, q Query, pageToken string, pageSize int) (ThreadPage, error)
	GetThread(ctx context.Context, id ThreadID) (Thread, error)
	Send(ctx context.Context, raw string) (MessageID, error)
	Modify(ctx context.Context, id MessageID, ops ModifyOps) error
	ListLabels(ctx context.Context) (map[string]LabelID, map[LabelID]string, error)
	CreateLabel(ctx context.Context, name string) (LabelID, error)
}
