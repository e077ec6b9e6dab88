package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"selfbot/models"
	"selfbot/utils"
)

func (s *CommandsService) utilityCommands() []Command {
	return []Command{
		{Name: "ping", Category: CategoryUtility, Usage: "ping", Handler: s.ping},
		{Name: "uptime", Category: CategoryUtility, Usage: "uptime", Handler: s.uptime},
		{Name: "userinfo", Category: CategoryUtility, Usage: "userinfo", Handler: s.userInfo},
		{Name: "serverinfo", Category: CategoryUtility, Usage: "serverinfo", Handler: s.serverInfo},
		{Name: "avatar", Category: CategoryUtility, Usage: "avatar", Handler: s.avatar},
		{Name: "banner", Category: CategoryUtility, Usage: "banner", Handler: s.banner},
		{Name: "channelinfo", Category: CategoryUtility, Usage: "channelinfo", Handler: s.channelInfo},
		{Name: "rolelist", Category: CategoryUtility, Usage: "rolelist", Handler: s.roleList},
		{Name: "emojilist", Category: CategoryUtility, Usage: "emojilist", Handler: s.emojiList},
		{Name: "invite", Category: CategoryUtility, Usage: "invite", Handler: s.invite},
	}
}

func (s *CommandsService) ping(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("Pong! Latency: %dms", s.chatClient.Latency().Milliseconds()), nil
}

func (s *CommandsService) uptime(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	minutes := int(s.now().Sub(s.startedAt) / time.Minute)
	return textf("Uptime: %d minutes", minutes), nil
}

func (s *CommandsService) userInfo(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	user := s.chatClient.SelfUser()
	return textf("ID: %s\nTag: %s\nCreated: %s", user.ID, user.Tag, user.CreatedAt.UTC().Format(time.RFC1123)), nil
}

func (s *CommandsService) serverInfo(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if inv.Message.IsDirectMessage() {
		return text("Name: DM\nMembers: N/A\nOwner: N/A"), nil
	}

	guild, err := s.chatClient.GetGuild(ctx, inv.Message.GuildID.MustGet())
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to get guild: %w", err)
	}

	members := "N/A"
	if guild.MemberCount > 0 {
		members = fmt.Sprintf("%d", guild.MemberCount)
	}
	return textf("Name: %s\nMembers: %s\nOwner: %s", guild.Name, members, guild.OwnerID), nil
}

func (s *CommandsService) avatar(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return mo.Some(models.Reply{AttachmentURL: s.chatClient.SelfUser().AvatarURL}), nil
}

func (s *CommandsService) banner(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	bannerURL := s.chatClient.SelfUser().BannerURL
	if bannerURL == "" {
		return text("No banner set."), nil
	}
	return mo.Some(models.Reply{AttachmentURL: bannerURL}), nil
}

func (s *CommandsService) channelInfo(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	channel, err := s.chatClient.GetChannel(ctx, inv.Message.ChannelID)
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to get channel: %w", err)
	}

	name := channel.Name
	if name == "" {
		name = "DM"
	}
	return textf("Name: %s\nID: %s\nType: %s", name, channel.ID, channel.Type), nil
}

func (s *CommandsService) roleList(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return s.guildList(ctx, inv, "Roles", func(guild *models.GuildInfo) string {
		return strings.Join(guild.RoleNames, ", ")
	})
}

func (s *CommandsService) emojiList(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return s.guildList(ctx, inv, "Emojis", func(guild *models.GuildInfo) string {
		return strings.Join(guild.Emojis, " ")
	})
}

func (s *CommandsService) guildList(
	ctx context.Context,
	inv Invocation,
	label string,
	render func(guild *models.GuildInfo) string,
) (mo.Option[models.Reply], error) {
	if inv.Message.IsDirectMessage() {
		return textf("%s: N/A", label), nil
	}

	guild, err := s.chatClient.GetGuild(ctx, inv.Message.GuildID.MustGet())
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to get guild: %w", err)
	}

	listing := utils.TruncateRunes(render(guild), utils.MaxListReplyLength)
	if listing == "" {
		listing = "N/A"
	}
	return textf("%s: %s", label, listing), nil
}

func (s *CommandsService) invite(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if inv.Message.IsDirectMessage() {
		return text("Cannot create invite in DMs."), nil
	}

	inviteURL, err := s.chatClient.CreateInvite(ctx, inv.Message.ChannelID)
	if err != nil {
		return mo.None[models.Reply](), fmt.Errorf("failed to create invite: %w", err)
	}
	return textf("Invite: %s", inviteURL), nil
}
