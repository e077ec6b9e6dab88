package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"

	"selfbot/models"
)

// AFKNotice is sent to anyone mentioning the account while AFK mode is on
const AFKNotice = "I am AFK right now."

// applyAutomationRules evaluates AFK, auto-reply and copycat in that order.
// All three read one snapshot of the state and every applicable rule fires.
// Callers must only pass foreign-authored messages, so our own echoes never come back here.
func (d *DispatchUseCase) applyAutomationRules(ctx context.Context, msg models.InboundMessage, selfID string) error {
	afk, autoReply, copycat := d.state.AutomationRules()
	mentioned := msg.Mentions(selfID)

	var errs []error

	if afk && mentioned {
		log.Printf("💤 Sending AFK notice to %s in channel %s", msg.AuthorID, msg.ChannelID)
		if _, err := d.chatClient.ReplyTo(ctx, msg, models.Reply{Text: AFKNotice}); err != nil {
			errs = append(errs, fmt.Errorf("failed to send AFK notice: %w", err))
		}
	}

	if text, ok := autoReply.Get(); ok && mentioned {
		log.Printf("💬 Sending auto-reply to %s in channel %s", msg.AuthorID, msg.ChannelID)
		if _, err := d.chatClient.ReplyTo(ctx, msg, models.Reply{Text: text}); err != nil {
			errs = append(errs, fmt.Errorf("failed to send auto-reply: %w", err))
		}
	}

	if channelID, ok := copycat.Get(); ok && channelID == msg.ChannelID && msg.Content != "" {
		if _, err := d.chatClient.SendMessage(ctx, channelID, models.Reply{Text: msg.Content}); err != nil {
			errs = append(errs, fmt.Errorf("failed to echo message: %w", err))
		}
	}

	return errors.Join(errs...)
}
