package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"selfbot/models"
)

const defaultStreamURL = "https://twitch.tv/example"

func (s *CommandsService) statusCommands() []Command {
	return []Command{
		{Name: "playing", Category: CategoryStatus, Usage: "playing [game]", Handler: s.activityHandler(models.ActivityPlaying, "playing [game]")},
		{Name: "watching", Category: CategoryStatus, Usage: "watching [title]", Handler: s.activityHandler(models.ActivityWatching, "watching [title]")},
		{Name: "listening", Category: CategoryStatus, Usage: "listening [track]", Handler: s.activityHandler(models.ActivityListening, "listening [track]")},
		{Name: "competing", Category: CategoryStatus, Usage: "competing [event]", Handler: s.activityHandler(models.ActivityCompeting, "competing [event]")},
		{Name: "streaming", Category: CategoryStatus, Usage: "streaming [title] [url]", Handler: s.streaming},
		{Name: "clearstatus", Category: CategoryStatus, Usage: "clearstatus", Handler: s.clearStatus},
		{Name: "nickname", Category: CategoryStatus, Usage: "nickname [name]", Handler: s.nickname},
		{Name: "bio", Category: CategoryStatus, Usage: "bio", Handler: s.static("Bio updates not directly supported; edit profile manually.")},
		{Name: "hypesquadbravery", Category: CategoryStatus, Usage: "hypesquadbravery", Handler: s.static("HypeSquad changes require manual app settings.")},
		{Name: "hypesquadbrilliance", Category: CategoryStatus, Usage: "hypesquadbrilliance", Handler: s.static("HypeSquad changes require manual app settings.")},
	}
}

func (s *CommandsService) activityHandler(kind models.ActivityKind, usage string) Handler {
	return func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
		if len(inv.Args) == 0 {
			return s.usageReply(usage), nil
		}
		return s.setActivity(ctx, &models.Activity{Kind: kind, Name: inv.Joined()})
	}
}

// streaming takes an optional trailing http(s) URL; the rest of the arguments name the stream
func (s *CommandsService) streaming(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	args := inv.Args
	streamURL := defaultStreamURL
	if len(args) > 0 && strings.HasPrefix(args[len(args)-1], "http") {
		streamURL = args[len(args)-1]
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return s.usageReply("streaming [title] [url]"), nil
	}

	return s.setActivity(ctx, &models.Activity{
		Kind: models.ActivityStreaming,
		Name: strings.Join(args, " "),
		URL:  streamURL,
	})
}

func (s *CommandsService) setActivity(ctx context.Context, activity *models.Activity) (mo.Option[models.Reply], error) {
	if err := s.applyPresence(ctx, func(p *models.Presence) { p.Activity = activity }); err != nil {
		return mo.None[models.Reply](), err
	}
	return text("Status set!"), nil
}

func (s *CommandsService) clearStatus(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if err := s.applyPresence(ctx, func(p *models.Presence) { p.Activity = nil }); err != nil {
		return mo.None[models.Reply](), err
	}
	return text("Status cleared!"), nil
}

func (s *CommandsService) nickname(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if inv.Message.IsDirectMessage() {
		return text("Cannot change nickname in DMs."), nil
	}

	if err := s.chatClient.SetNickname(ctx, inv.Message.GuildID.MustGet(), inv.Joined()); err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to set nickname: %w", err)
	}
	return text("Nickname updated!"), nil
}

func (s *CommandsService) static(reply string) Handler {
	return func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
		return text(reply), nil
	}
}
