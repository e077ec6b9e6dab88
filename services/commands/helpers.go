package commands

import (
	"context"
	"log"
	"strings"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/models"
)

// usageReply renders a usage hint with the configured prefix, e.g. "Usage: !weather [city]"
func (s *CommandsService) usageReply(usage string) mo.Option[models.Reply] {
	return text("Usage: " + s.prefix + usage)
}

// fetchReply runs one enrichment lookup and formats the payload.
// Any provider failure or unreadable payload turns into the fallback reply.
func (s *CommandsService) fetchReply(
	ctx context.Context,
	provider string,
	query string,
	fallback string,
	format func(payload clients.Payload) (string, bool),
) mo.Option[models.Reply] {
	payload, err := s.enrichmentClient.Fetch(ctx, provider, query).Get()
	if err != nil {
		log.Printf("⚠️ Enrichment provider %s failed: %v", provider, err)
		return text(fallback)
	}

	body, ok := format(payload)
	if !ok || strings.TrimSpace(body) == "" {
		log.Printf("⚠️ Enrichment provider %s returned an unexpected payload", provider)
		return text(fallback)
	}
	return text(body)
}

// plainText formats text providers
func plainText(payload clients.Payload) (string, bool) {
	return payload.Text(), payload.Text() != ""
}

// jsonField formats a single string field of a JSON provider
func jsonField(path string) func(payload clients.Payload) (string, bool) {
	return func(payload clients.Payload) (string, bool) {
		value := payload.Get(path)
		return value.String(), value.Exists() && value.String() != ""
	}
}

func hasField(payload clients.Payload, paths ...string) bool {
	for _, path := range paths {
		if payload.Get(path).String() == "" {
			return false
		}
	}
	return true
}
