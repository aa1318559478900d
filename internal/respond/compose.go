// internal/respond/compose.go
package respond

import (
	"encoding/base64"
	"fmt"

	"github.com/joshsymonds/awaybot/internal/gmail"
)

// DefaultSubject is used when the thread being replied to has no Subject
// header.
const DefaultSubject = "Vacation Alert"

// DefaultBody is the canned vacation notice sent when no body is
// configured.
const DefaultBody = "Hey,\n\nI'm on vacation right now.\n\nI'll ping you when I'm back.\n"

// envelopeFormat is the exact raw-message layout the Gmail send endpoint
// expects from this responder. The header names are lowercase and the body
// is separated from the subject line by two blank lines; both quirks are
// load-bearing for the transport and must not be normalized.
const envelopeFormat = "Content-Type: text/plain; charset=\"UTF-8\"\n" +
	"MIME-Version: 1.0\n" +
	"Content-Transfer-Encoding: 7bit\n" +
	"to: %s\n" +
	"from: %s\n" +
	"subject: %s\n" +
	"\n\n%s"

// ComposeOptions configures reply composition.
type ComposeOptions struct {
	From           string // sender identity, "me" for the authorized user
	Body           string // vacation notice text; DefaultBody when empty
	DefaultSubject string // fallback subject; DefaultSubject when empty
}

// Reply is a composed outgoing message plus its transport-ready payload.
type Reply struct {
	To      string
	From    string
	Subject string
	Body    string
	Raw     string // URL-safe base64 envelope for messages.send
}

// Compose builds the auto-reply for a candidate. The subject is the
// original Subject (read from the flattened headers) prefixed with "RE: ",
// falling back to the configured default subject.
func Compose(c Candidate, opts ComposeOptions) Reply {
	from := opts.From
	if from == "" {
		from = "me"
	}
	body := opts.Body
	if body == "" {
		body = DefaultBody
	}
	subject, ok := gmail.FlattenHeaders(c.Headers)["Subject"]
	if !ok {
		subject = opts.DefaultSubject
		if subject == "" {
			subject = DefaultSubject
		}
	}
	subject = "RE: " + subject

	reply := Reply{
		To:      c.Recipient,
		From:    from,
		Subject: subject,
		Body:    body,
	}
	reply.Raw = EncodeRaw(reply)
	return reply
}

// EncodeRaw renders the plain-text envelope and encodes it as URL-safe
// base64: standard base64 with '+' mapped to '-' and '/' to '_', padding
// intact.
func EncodeRaw(r Reply) string {
	envelope := fmt.Sprintf(envelopeFormat, r.To, r.From, r.Subject, r.Body)
	return base64.URLEncoding.EncodeToString([]byte(envelope))
}

// DecodeRaw reverses EncodeRaw, returning the plain-text envelope.
func DecodeRaw(raw string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode raw payload: %w", err)
	}
	return string(decoded), nil
}
