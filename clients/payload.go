package clients

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Payload is the normalized body returned by an enrichment provider
type Payload struct {
	Provider string
	Body     []byte
}

// NewPayload wraps a raw response body
func NewPayload(provider string, body []byte) Payload {
	return Payload{Provider: provider, Body: body}
}

// Text returns the body as trimmed text
func (p Payload) Text() string {
	return strings.TrimSpace(string(p.Body))
}

// Get extracts a field from a JSON body using gjson path syntax
func (p Payload) Get(path string) gjson.Result {
	return gjson.GetBytes(p.Body, path)
}

// IsJSON reports whether the body is well-formed JSON
func (p Payload) IsJSON() bool {
	return gjson.ValidBytes(p.Body)
}
