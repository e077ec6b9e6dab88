package clients

import (
	"context"
	"time"

	"github.com/samber/mo"

	"selfbot/models"
)

// ChatClient defines the chat session operations the bot relies on
type ChatClient interface {
	// Identity
	SelfUser() models.SelfUser
	Latency() time.Duration

	// Message operations
	SendMessage(ctx context.Context, channelID string, reply models.Reply) (string, error)
	ReplyTo(ctx context.Context, msg models.InboundMessage, reply models.Reply) (string, error)
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error

	// Channel and guild operations
	GetChannel(ctx context.Context, channelID string) (*models.ChannelInfo, error)
	GetGuild(ctx context.Context, guildID string) (*models.GuildInfo, error)
	CreateInvite(ctx context.Context, channelID string) (string, error)
	SetNickname(ctx context.Context, guildID, nickname string) error

	// Presence operations
	UpdatePresence(ctx context.Context, presence models.Presence) error
}

// EnrichmentClient issues a lookup against one external data provider
type EnrichmentClient interface {
	Fetch(ctx context.Context, provider string, query string) mo.Result[Payload]
	HasAPIKey(provider string) bool
}

// AssistantClient answers free-form questions through an LLM provider
type AssistantClient interface {
	Ask(ctx context.Context, question string) (string, error)
}
