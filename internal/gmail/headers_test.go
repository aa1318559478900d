package gmail

import "testing"

func TestLookupHeaderFirstMatchWins(t *testing.T) {
	headers := []Header{
		{Name: "Received", Value: "hop-1"},
		{Name: "From", Value: "alice@example.com"},
		{Name: "From", Value: "mallory@example.com"},
	}

	got, ok := LookupHeader(headers, "From")
	if !ok {
		t.Fatalf("expected From header to be found")
	}
	if got != "alice@example.com" {
		t.Fatalf("expected first From value, got %q", got)
	}
}

func TestLookupHeaderAbsent(t *testing.T) {
	headers := []Header{{Name: "Subject", Value: "Hello"}}
	if _, ok := LookupHeader(headers, "From"); ok {
		t.Fatalf("expected From to be absent")
	}
}

func TestFlattenHeadersLastMatchWins(t *testing.T) {
	headers := []Header{
		{Name: "From", Value: "alice@example.com"},
		{Name: "From", Value: "mallory@example.com"},
		{Name: "Subject", Value: "Hello"},
	}

	flat := FlattenHeaders(headers)
	if flat["From"] != "mallory@example.com" {
		t.Fatalf("expected last From value, got %q", flat["From"])
	}
	if flat["Subject"] != "Hello" {
		t.Fatalf("unexpected Subject %q", flat["Subject"])
	}
}

func TestFlattenHeadersStripsHyphens(t *testing.T) {
	headers := []Header{
		{Name: "Message-ID", Value: "<abc@example.com>"},
		{Name: "In-Reply-To", Value: "<def@example.com>"},
	}

	flat := FlattenHeaders(headers)
	if flat["MessageID"] != "<abc@example.com>" {
		t.Fatalf("expected hyphen-stripped key MessageID, got map %v", flat)
	}
	if flat["InReplyTo"] != "<def@example.com>" {
		t.Fatalf("expected hyphen-stripped key InReplyTo, got map %v", flat)
	}
}

func TestHasLabel(t *testing.T) {
	msg := Message{Labels: []LabelID{LabelUnread, "INBOX"}}
	if !msg.HasLabel(LabelUnread) {
		t.Fatalf("expected UNREAD to be present")
	}
	if msg.HasLabel(LabelSent) {
		t.Fatalf("did not expect SENT")
	}
}
