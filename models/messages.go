package models

import "github.com/samber/mo"

// InboundMessage is the transport-neutral view of one received chat message
type InboundMessage struct {
	ID               string
	AuthorID         string
	Content          string
	ChannelID        string
	GuildID          mo.Option[string]
	MentionedUserIDs map[string]struct{}
}

// Mentions reports whether the message mentions the given user
func (m InboundMessage) Mentions(userID string) bool {
	_, ok := m.MentionedUserIDs[userID]
	return ok
}

// IsDirectMessage is true for messages sent outside of a guild
func (m InboundMessage) IsDirectMessage() bool {
	return !m.GuildID.IsPresent()
}

// ParsedCommand is a prefixed self-authored message split into name and arguments
type ParsedCommand struct {
	Name string
	Args []string
}

// Embed is a structured rich reply
type Embed struct {
	Title       string
	Description string
	Color       int
	Footer      string
	ImageURL    string
}

// Reply is a single outbound message.
// Exactly one of Text, AttachmentURL or Embed is expected to carry the body;
// Text may accompany AttachmentURL as a caption.
type Reply struct {
	Text          string
	AttachmentURL string
	Embed         *Embed
	// FallbackText is sent instead when the transport rejects an embed
	FallbackText string
}
