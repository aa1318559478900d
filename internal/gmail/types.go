// internal/gmail/types.go
package gmail

type ThreadID string
type MessageID string
type LabelID string

// Well-known Gmail system labels the responder cares about.
const (
	LabelSent   LabelID = "SENT"
	LabelUnread LabelID = "UNREAD"
)

type Header struct {
	Name  string
	Value string
}

// Message is the slice of a Gmail message the responder needs: labels to
// detect prior replies, headers to address the reply, snippet for context.
type Message struct {
	ID      MessageID
	Snippet string
	Labels  []LabelID
	Headers []Header // name/value pairs as returned; names may repeat
}

// Thread is a conversation in the order the service returned it.
type Thread struct {
	ID       ThreadID
	Messages []Message
}

// HasLabel reports whether the message carries the given label.
func (m Message) HasLabel(id LabelID) bool {
	for _, l := range m.Labels {
		if l == id {
			return true
		}
	}
	return false
}

type ModifyOps struct {
	AddLabels    []LabelID
	RemoveLabels []LabelID
}

type Query struct {
	Raw string // Gmail query string, already formed (e.g., `is:unread after:11/10/2023`)
}

// ThreadPage is one page of a thread listing.
type ThreadPage struct {
	IDs           []ThreadID
	NextPageToken string
}
