package dispatch

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/core"
	"selfbot/models"
	"selfbot/services/commands"
	"selfbot/services/session"
	"selfbot/utils"
)

// DispatchUseCase routes every inbound message either to a command or to the automation rules
type DispatchUseCase struct {
	chatClient    clients.ChatClient
	registry      CommandRegistry
	state         *session.State
	errorReporter ErrorReporter
}

func NewDispatchUseCase(
	chatClient clients.ChatClient,
	registry CommandRegistry,
	state *session.State,
	errorReporter ErrorReporter,
) *DispatchUseCase {
	utils.AssertInvariant(chatClient != nil, "chat client must not be nil")
	utils.AssertInvariant(registry != nil, "command registry must not be nil")
	utils.AssertInvariant(state != nil, "session state must not be nil")
	utils.AssertInvariant(errorReporter != nil, "error reporter must not be nil")

	return &DispatchUseCase{
		chatClient:    chatClient,
		registry:      registry,
		state:         state,
		errorReporter: errorReporter,
	}
}

// HandleMessage processes one inbound message.
// Only self-authored messages are parsed as commands; everything else feeds the automation rules.
// The returned error is a transport failure while replying, never a command failure.
func (d *DispatchUseCase) HandleMessage(ctx context.Context, msg models.InboundMessage) error {
	selfID := d.chatClient.SelfUser().ID
	if msg.AuthorID != selfID {
		return d.applyAutomationRules(ctx, msg, selfID)
	}

	prefix := d.registry.Prefix()
	maybeParsed := utils.ParseCommand(msg.Content, prefix)
	if !maybeParsed.IsPresent() {
		return nil
	}
	parsed := maybeParsed.MustGet()

	maybeCommand := d.registry.Lookup(parsed.Name)
	if !maybeCommand.IsPresent() {
		log.Printf("🔍 Unknown command %q in channel %s", parsed.Name, msg.ChannelID)
		return d.sendReply(ctx, msg, models.Reply{Text: fmt.Sprintf("Unknown command. Use %shelp for info.", prefix)})
	}
	cmd := maybeCommand.MustGet()

	log.Printf("📋 Starting to run command %s with %d args in channel %s", cmd.Name, len(parsed.Args), msg.ChannelID)
	reply, err := d.invoke(ctx, cmd, commands.Invocation{Message: msg, Args: parsed.Args})
	if err != nil {
		log.Printf("❌ Command %s failed: %v", cmd.Name, err)
		d.errorReporter.ReportError(err, fmt.Sprintf("command %s", cmd.Name))
		return d.sendReply(ctx, msg, models.Reply{Text: "Error: " + err.Error()})
	}

	if reply.IsPresent() {
		if err := d.sendReply(ctx, msg, reply.MustGet()); err != nil {
			return err
		}
	}
	log.Printf("📋 Completed successfully - ran command %s", cmd.Name)
	return nil
}

// invoke runs a handler inside the failure boundary, turning panics into errors
func (d *DispatchUseCase) invoke(
	ctx context.Context,
	cmd commands.Command,
	inv commands.Invocation,
) (reply mo.Option[models.Reply], err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = mo.None[models.Reply]()
			err = &core.HandlerPanicError{Command: cmd.Name, Value: r}
		}
	}()
	return cmd.Handler(ctx, inv)
}

// sendReply answers msg, retrying a rejected embed once as its plain text fallback
func (d *DispatchUseCase) sendReply(ctx context.Context, msg models.InboundMessage, reply models.Reply) error {
	_, err := d.chatClient.ReplyTo(ctx, msg, reply)
	if err == nil {
		return nil
	}

	if reply.Embed != nil && reply.FallbackText != "" {
		log.Printf("⚠️ Embed reply rejected, retrying as text: %v", err)
		if _, err = d.chatClient.ReplyTo(ctx, msg, models.Reply{Text: reply.FallbackText}); err == nil {
			return nil
		}
	}

	log.Printf("❌ Failed to reply in channel %s: %v", msg.ChannelID, err)
	return fmt.Errorf("failed to send reply: %w", err)
}
