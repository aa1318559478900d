package gmail

import "strings"

// LookupHeader returns the value of the first header with the given name.
// Header lists may contain duplicates; first match wins here, which is the
// tie-break callers rely on when reading From.
func LookupHeader(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// FlattenHeaders collapses a header list into a map keyed by header name
// with hyphens removed (Message-ID becomes MessageID). Later duplicates
// overwrite earlier ones — the opposite tie-break from LookupHeader.
func FlattenHeaders(headers []Header) map[string]string {
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		out[strings.ReplaceAll(h.Name, "-", "")] = h.Value
	}
	return out
}
