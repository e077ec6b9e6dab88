package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"
	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/middleware"
	"selfbot/models"
	"selfbot/utils"
)

// MessageHandler consumes inbound chat messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg models.InboundMessage) error
}

// StartupPresence is advertised as soon as the session is ready
var StartupPresence = models.Presence{
	Status:   models.PresenceOnline,
	Activity: &models.Activity{Kind: models.ActivityPlaying, Name: "with 100+ commands"},
}

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	chatClient       clients.ChatClient
	messageHandler   MessageHandler
	errorAlerts      *middleware.ErrorAlertMiddleware
	workerPool       *workerpool.WorkerPool
	onReady          func(presence models.Presence)

	ctx    context.Context
	cancel context.CancelFunc
}

func NewDiscordEventsHandler(
	discordSDKClient *discordgo.Session,
	chatClient clients.ChatClient,
	messageHandler MessageHandler,
	errorAlerts *middleware.ErrorAlertMiddleware,
	workerCount int,
	onReady func(presence models.Presence),
) *DiscordEventsHandler {
	utils.AssertInvariant(workerCount > 0, "worker count must be positive")

	ctx, cancel := context.WithCancel(context.Background())
	handler := &DiscordEventsHandler{
		discordSDKClient: discordSDKClient,
		chatClient:       chatClient,
		messageHandler:   messageHandler,
		errorAlerts:      errorAlerts,
		workerPool:       workerpool.New(workerCount),
		onReady:          onReady,
		ctx:              ctx,
		cancel:           cancel,
	}

	if discordSDKClient != nil {
		discordSDKClient.AddHandler(handler.handleReadyEvent)
		discordSDKClient.AddHandler(handler.handleMessageCreatedEvent)
		discordSDKClient.Identify.Intents = discordgo.IntentsGuildMessages |
			discordgo.IntentsDirectMessages |
			discordgo.IntentsMessageContent
	}

	return handler
}

// StartBot opens the gateway connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Printf("🤖 Discord session is now running and listening for events")
	return nil
}

// StopBot cancels in-flight work, drains the queue and closes the gateway connection
func (h *DiscordEventsHandler) StopBot() {
	h.cancel()
	h.workerPool.StopWait()
	if h.discordSDKClient != nil {
		if err := h.discordSDKClient.Close(); err != nil {
			log.Printf("⚠️ Failed to close Discord session cleanly: %v", err)
		}
	}
	log.Printf("🛑 Discord session stopped")
}

// handleReadyEvent announces the login and applies the startup presence
func (h *DiscordEventsHandler) handleReadyEvent(s *discordgo.Session, r *discordgo.Ready) {
	tag := "unknown"
	if r.User != nil {
		tag = r.User.String()
	}
	log.Printf("🤖 Logged in as %s! Self-bot is online with %d guilds", tag, len(r.Guilds))

	if err := h.chatClient.UpdatePresence(h.ctx, StartupPresence); err != nil {
		log.Printf("⚠️ Failed to set startup presence: %v", err)
		return
	}
	if h.onReady != nil {
		h.onReady(StartupPresence)
	}
}

// handleMessageCreatedEvent queues the message for the dispatcher so the gateway loop never blocks
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}

	msg := mapToInboundMessage(m.Message)
	log.Printf("📨 Message %s received from %s in channel %s (queued: %d)",
		msg.ID, msg.AuthorID, msg.ChannelID, h.workerPool.WaitingQueueSize())

	h.workerPool.Submit(h.errorAlerts.WrapEventHandler("messageCreate", func() error {
		return h.messageHandler.HandleMessage(h.ctx, msg)
	}))
}

func mapToInboundMessage(m *discordgo.Message) models.InboundMessage {
	mentions := make(map[string]struct{}, len(m.Mentions))
	for _, user := range m.Mentions {
		if user != nil {
			mentions[user.ID] = struct{}{}
		}
	}

	guildID := mo.None[string]()
	if m.GuildID != "" {
		guildID = mo.Some(m.GuildID)
	}

	authorID := ""
	if m.Author != nil {
		authorID = m.Author.ID
	}

	return models.InboundMessage{
		ID:               m.ID,
		AuthorID:         authorID,
		Content:          m.Content,
		ChannelID:        m.ChannelID,
		GuildID:          guildID,
		MentionedUserIDs: mentions,
	}
}
