package commands

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"selfbot/models"
)

// DefaultAutoReplyText is used when autoreplyon is given no text
const DefaultAutoReplyText = "Auto-reply active!"

func (s *CommandsService) automationCommands() []Command {
	return []Command{
		{Name: "afkon", Category: CategoryAutomation, Usage: "afkon", Handler: s.afkOn},
		{Name: "afkoff", Category: CategoryAutomation, Usage: "afkoff", Handler: s.afkOff},
		{Name: "autoreplyon", Category: CategoryAutomation, Usage: "autoreplyon [text]", Handler: s.autoReplyOn},
		{Name: "autoreplyoff", Category: CategoryAutomation, Usage: "autoreplyoff", Handler: s.autoReplyOff},
		{Name: "copycaton", Category: CategoryAutomation, Usage: "copycaton", Handler: s.copycatOn},
		{Name: "copycatoff", Category: CategoryAutomation, Usage: "copycatoff", Handler: s.copycatOff},
		{Name: "statusonline", Category: CategoryAutomation, Usage: "statusonline", Handler: s.statusHandler(models.PresenceOnline, "Online")},
		{Name: "statusidle", Category: CategoryAutomation, Usage: "statusidle", Handler: s.statusHandler(models.PresenceIdle, "Idle")},
		{Name: "statusdnd", Category: CategoryAutomation, Usage: "statusdnd", Handler: s.statusHandler(models.PresenceDND, "DND")},
		{Name: "statusinvisible", Category: CategoryAutomation, Usage: "statusinvisible", Handler: s.statusHandler(models.PresenceInvisible, "Invisible")},
	}
}

func (s *CommandsService) afkOn(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.SetAFK(true)
	return text("AFK mode enabled."), nil
}

func (s *CommandsService) afkOff(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.SetAFK(false)
	return text("AFK mode disabled."), nil
}

func (s *CommandsService) autoReplyOn(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	replyText := inv.Joined()
	if replyText == "" {
		replyText = DefaultAutoReplyText
	}
	s.state.SetAutoReply(mo.Some(replyText))
	return text("Auto-reply enabled."), nil
}

func (s *CommandsService) autoReplyOff(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.SetAutoReply(mo.None[string]())
	return text("Auto-reply disabled."), nil
}

func (s *CommandsService) copycatOn(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.SetCopycatChannel(mo.Some(inv.Message.ChannelID))
	return text("Copycat mode on."), nil
}

func (s *CommandsService) copycatOff(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.SetCopycatChannel(mo.None[string]())
	return text("Copycat mode off."), nil
}

func (s *CommandsService) statusHandler(status models.PresenceStatus, label string) Handler {
	return func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
		if err := s.applyPresence(ctx, func(p *models.Presence) { p.Status = status }); err != nil {
			return mo.None[models.Reply](), err
		}
		return textf("Status: %s", label), nil
	}
}

// applyPresence records the change in session state and pushes the full presence to the transport
func (s *CommandsService) applyPresence(ctx context.Context, mutate func(p *models.Presence)) error {
	presence := s.state.UpdatePresence(mutate)
	if err := s.chatClient.UpdatePresence(ctx, presence); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}
