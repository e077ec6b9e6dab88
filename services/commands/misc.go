package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/clients/enrichment"
	"selfbot/models"
	"selfbot/services/calculator"
	"selfbot/services/session"
	"selfbot/utils"
)

const (
	defaultGeoIPTarget = "8.8.8.8"
	maxReminderMinutes = 7 * 24 * 60
	embedColorBlue     = 0x3498db
	pollUpvote         = "👍"
	pollDownvote       = "👎"
)

func (s *CommandsService) miscCommands() []Command {
	return []Command{
		{Name: "qrgen", Category: CategoryMisc, Usage: "qrgen [text]", Handler: s.qrGen},
		{Name: "geoip", Category: CategoryMisc, Usage: "geoip [ip]", Handler: s.geoIP},
		{Name: "tts", Category: CategoryMisc, Usage: "tts", Handler: s.static("Text-to-speech not supported in self-bots; use external tools.")},
		{Name: "calc", Category: CategoryMisc, Usage: "calc [expression]", Handler: s.calc},
		{Name: "remindme", Category: CategoryMisc, Usage: "remindme [minutes] [message]", Handler: s.remindMe},
		{Name: "note", Category: CategoryMisc, Usage: "note [text]", Handler: s.note},
		{Name: "notes", Category: CategoryMisc, Usage: "notes", Handler: s.notes},
		{Name: "poll", Category: CategoryMisc, Usage: "poll [question]", Handler: s.poll},
		{Name: "embed", Category: CategoryMisc, Usage: "embed [title] [description]", Handler: s.embed},
		{Name: "react", Category: CategoryMisc, Usage: "react [emoji]", Handler: s.react},
		{Name: "shutdown", Category: CategoryMisc, Usage: "shutdown", Handler: s.shutdownCommand},
	}
}

func (s *CommandsService) qrGen(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return s.usageReply("qrgen [text]"), nil
	}
	data := strings.ReplaceAll(url.QueryEscape(inv.Joined()), "+", "%20")
	return textf("QR Code for \"%s\": https://api.qrserver.com/v1/create-qr-code/?data=%s&size=200x200", inv.Joined(), data), nil
}

func (s *CommandsService) geoIP(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	target := inv.Arg(0).OrElse(defaultGeoIPTarget)
	return s.fetchReply(ctx, enrichment.ProviderGeoIP, target, "Failed to fetch GeoIP data.", func(payload clients.Payload) (string, bool) {
		if payload.Get("status").String() != "success" {
			return "", false
		}
		return fmt.Sprintf("Location for %s: %s, %s (Lat: %s, Lon: %s)",
			target,
			payload.Get("city").String(),
			payload.Get("country").String(),
			payload.Get("lat").Raw,
			payload.Get("lon").Raw,
		), true
	}), nil
}

func (s *CommandsService) calc(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return s.usageReply("calc [expression]"), nil
	}

	result, err := calculator.Evaluate(inv.Joined())
	if err != nil {
		return text("Invalid expression."), nil
	}
	return textf("Result: %s", result.String()), nil
}

func (s *CommandsService) remindMe(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	minutes, err := strconv.Atoi(inv.Arg(0).OrEmpty())
	if err != nil || minutes <= 0 || minutes > maxReminderMinutes {
		return s.usageReply("remindme [minutes] [message]"), nil
	}
	message := strings.Join(inv.Args[1:], " ")

	_, err = s.state.ScheduleReminder(inv.Message.ChannelID, message, time.Duration(minutes)*time.Minute, s.deliverReminder)
	if err != nil {
		if errors.Is(err, session.ErrClosed) {
			return text("Shutting down, reminder not set."), nil
		}
		return mo.None[models.Reply](), fmt.Errorf("failed to schedule reminder: %w", err)
	}
	return textf("Reminder set for %d minutes.", minutes), nil
}

// deliverReminder runs on the timer goroutine, long after the invoking context is gone
func (s *CommandsService) deliverReminder(reminder session.Reminder) {
	if _, err := s.chatClient.SendMessage(context.Background(), reminder.ChannelID, models.Reply{Text: "Reminder: " + reminder.Text}); err != nil {
		log.Printf("❌ Failed to deliver reminder %s: %v", reminder.ID, err)
		return
	}
	log.Printf("⏰ Delivered reminder %s to channel %s", reminder.ID, reminder.ChannelID)
}

func (s *CommandsService) note(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return s.usageReply("note [text]"), nil
	}
	s.state.AppendNote(inv.Joined())
	return text("Note saved!"), nil
}

func (s *CommandsService) notes(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	notes := s.state.Notes()
	if notes == "" {
		return text("No notes."), nil
	}
	return text(utils.TruncateRunes(notes, utils.MaxListReplyLength)), nil
}

// poll replies with the question and seeds it with up and down votes.
// A failed reaction is logged only; the poll itself already went out.
func (s *CommandsService) poll(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return s.usageReply("poll [question]"), nil
	}

	pollID, err := s.chatClient.ReplyTo(ctx, inv.Message, models.Reply{Text: "Poll: " + inv.Joined()})
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to send poll: %w", err)
	}

	for _, emoji := range []string{pollUpvote, pollDownvote} {
		if err := s.chatClient.AddReaction(ctx, inv.Message.ChannelID, pollID, emoji); err != nil {
			log.Printf("⚠️ Failed to add %s to poll %s: %v", emoji, pollID, err)
		}
	}
	return mo.None[models.Reply](), nil
}

func (s *CommandsService) embed(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return s.usageReply("embed [title] [description]"), nil
	}

	_, err := s.chatClient.SendMessage(ctx, inv.Message.ChannelID, models.Reply{
		Embed: &models.Embed{
			Title:       inv.Args[0],
			Description: strings.Join(inv.Args[1:], " "),
			Color:       embedColorBlue,
		},
	})
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to send embed: %w", err)
	}
	return mo.None[models.Reply](), nil
}

func (s *CommandsService) react(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	emoji, ok := inv.Arg(0).Get()
	if !ok {
		return s.usageReply("react [emoji]"), nil
	}

	if err := s.chatClient.AddReaction(ctx, inv.Message.ChannelID, inv.Message.ID, emoji); err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to react: %w", err)
	}
	return text("Reacted!"), nil
}

// shutdownCommand acknowledges before handing control to the shutdown hook
func (s *CommandsService) shutdownCommand(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	log.Printf("🛑 Shutdown requested from channel %s", inv.Message.ChannelID)
	if _, err := s.chatClient.ReplyTo(ctx, inv.Message, models.Reply{Text: "Shutting down..."}); err != nil {
		log.Printf("⚠️ Failed to acknowledge shutdown: %v", err)
	}
	if s.shutdown != nil {
		s.shutdown()
	}
	return mo.None[models.Reply](), nil
}
