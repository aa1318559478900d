// internal/runtime/googleapi.go — adapts *gmail.Service to our small interface
package runtime

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	gc "github.com/joshsymonds/awaybot/internal/gmail"
)

type googleClient struct{ svc *gmail.Service }

func NewGoogleAPIClient(svc *gmail.Service) *googleClient { return &googleClient{svc} }

func (g *googleClient) ListThreads(
	ctx context.Context,
	q gc.Query,
	pageToken string,
	pageSize int,
) (gc.ThreadPage, error) {
	call := g.svc.Users.Threads.List("me").Q(q.Raw).MaxResults(int64(pageSize))
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	res, err := call.Context(ctx).Do()
	if err != nil {
		return gc.ThreadPage{}, err
	}
	var ids []gc.ThreadID
	for _, t := range res.Threads {
		ids = append(ids, gc.ThreadID(t.Id))
	}
	return gc.ThreadPage{IDs: ids, NextPageToken: res.NextPageToken}, nil
}

func (g *googleClient) GetThread(ctx context.Context, id gc.ThreadID) (gc.Thread, error) {
	res, err := g.svc.Users.Threads.Get("me", string(id)).Format("metadata").Context(ctx).Do()
	if err != nil {
		return gc.Thread{}, err
	}
	thread := gc.Thread{ID: id}
	for _, m := range res.Messages {
		msg := gc.Message{
			ID:      gc.MessageID(m.Id),
			Snippet: m.Snippet,
			Labels:  toLabelIDs(m.LabelIds),
		}
		if m.Payload != nil {
			msg.Headers = toHeaders(m.Payload.Headers)
		}
		thread.Messages = append(thread.Messages, msg)
	}
	return thread, nil
}

func (g *googleClient) Send(ctx context.Context, raw string) (gc.MessageID, error) {
	sent, err := g.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return gc.MessageID(sent.Id), nil
}

func (g *googleClient) Modify(ctx context.Context, id gc.MessageID, ops gc.ModifyOps) error {
	req := &gmail.ModifyMessageRequest{}
	if len(ops.AddLabels) > 0 {
		req.AddLabelIds = toStringsL(ops.AddLabels)
	}
	if len(ops.RemoveLabels) > 0 {
		req.RemoveLabelIds = toStringsL(ops.RemoveLabels)
	}
	_, err := g.svc.Users.Messages.Modify("me", string(id), req).Context(ctx).Do()
	return err
}

func (g *googleClient) ListLabels(ctx context.Context) (map[string]gc.LabelID, map[gc.LabelID]string, error) {
	lr, err := g.svc.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, nil, err
	}
	byName := map[string]gc.LabelID{}
	byID := map[gc.LabelID]string{}
	for _, l := range lr.Labels {
		byName[l.Name] = gc.LabelID(l.Id)
		byID[gc.LabelID(l.Id)] = l.Name
	}
	return byName, byID, nil
}

func (g *googleClient) CreateLabel(ctx context.Context, name string) (gc.LabelID, error) {
	created, err := g.svc.Users.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create label %q: %w", name, err)
	}
	return gc.LabelID(created.Id), nil
}

func toLabelIDs(in []string) []gc.LabelID {
	if len(in) == 0 {
		return nil
	}
	out := make([]gc.LabelID, len(in))
	for i, s := range in {
		out[i] = gc.LabelID(s)
	}
	return out
}

func toStringsL(in []gc.LabelID) []string {
	out := make([]string, len(in))
	for i, l := range in {
		out[i] = string(l)
	}
	return out
}

func toHeaders(in []*gmail.MessagePartHeader) []gc.Header {
	if len(in) == 0 {
		return nil
	}
	out := make([]gc.Header, 0, len(in))
	for _, h := range in {
		out = append(out, gc.Header{Name: h.Name, Value: h.Value})
	}
	return out
}
