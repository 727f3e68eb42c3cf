package event

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"link_librarian/internal/model"
)

// ErrMalformedPayload means the body was neither valid JSON nor a
// payload=<urlencoded-json> form body.
var ErrMalformedPayload = errors.New("malformed event payload")

// Normalize parses a raw webhook body into an envelope. Slack posts JSON for
// events, but interactive message actions arrive form-encoded as
// payload=<urlencoded-json>, so a failed JSON parse gets exactly one fallback
// attempt against the decoded remainder.
func Normalize(raw []byte) (*model.EventEnvelope, error) {
	var env model.EventEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		return &env, nil
	}

	_, encoded, found := strings.Cut(string(raw), "payload=")
	if !found {
		return nil, ErrMalformedPayload
	}
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		return nil, ErrMalformedPayload
	}
	env = model.EventEnvelope{}
	if err := json.Unmarshal([]byte(decoded), &env); err != nil {
		return nil, ErrMalformedPayload
	}
	return &env, nil
}
