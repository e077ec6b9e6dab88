package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"selfbot/clients"
	"selfbot/models"
)

const inviteBaseURL = "https://discord.gg/"

// DiscordClient implements the clients.ChatClient interface on top of a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an already authenticated session
func NewDiscordClient(session *discordgo.Session) clients.ChatClient {
	return &DiscordClient{session: session}
}

// SelfUser returns the account the session is logged in as
func (c *DiscordClient) SelfUser() models.SelfUser {
	user := c.session.State.User
	if user == nil {
		return models.SelfUser{}
	}

	createdAt, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		createdAt = time.Time{}
	}

	return models.SelfUser{
		ID:        user.ID,
		Tag:       user.String(),
		CreatedAt: createdAt,
		AvatarURL: user.AvatarURL("1024"),
		BannerURL: user.BannerURL("1024"),
	}
}

func (c *DiscordClient) Latency() time.Duration {
	return c.session.HeartbeatLatency()
}

// SendMessage posts reply into a channel and returns the new message ID
func (c *DiscordClient) SendMessage(ctx context.Context, channelID string, reply models.Reply) (string, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID, toMessageSend(reply), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// ReplyTo posts reply as an inline reply to msg
func (c *DiscordClient) ReplyTo(ctx context.Context, msg models.InboundMessage, reply models.Reply) (string, error) {
	data := toMessageSend(reply)
	data.Reference = &discordgo.MessageReference{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID.OrEmpty(),
	}

	sent, err := c.session.ChannelMessageSendComplex(msg.ChannelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to reply to message %s: %w", msg.ID, err)
	}
	return sent.ID, nil
}

func (c *DiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := c.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add reaction %s: %w", emoji, err)
	}
	return nil
}

// GetChannel prefers the gateway state cache and falls back to REST
func (c *DiscordClient) GetChannel(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	channel, err := c.session.State.Channel(channelID)
	if err != nil {
		channel, err = c.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch channel: %w", err)
		}
	}

	return &models.ChannelInfo{
		ID:   channel.ID,
		Name: channel.Name,
		Type: channelTypeName(channel.Type),
	}, nil
}

// GetGuild prefers the gateway state cache and falls back to REST
func (c *DiscordClient) GetGuild(ctx context.Context, guildID string) (*models.GuildInfo, error) {
	guild, err := c.session.State.Guild(guildID)
	if err != nil {
		guild, err = c.session.Guild(guildID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild: %w", err)
		}
	}
	if guild == nil {
		return nil, fmt.Errorf("guild not found")
	}

	return toGuildInfo(guild), nil
}

// CreateInvite creates a never-expiring invite for the channel
func (c *DiscordClient) CreateInvite(ctx context.Context, channelID string) (string, error) {
	invite, err := c.session.ChannelInviteCreate(channelID, discordgo.Invite{MaxAge: 0}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}
	return inviteBaseURL + invite.Code, nil
}

func (c *DiscordClient) SetNickname(ctx context.Context, guildID, nickname string) error {
	if err := c.session.GuildMemberNickname(guildID, "@me", nickname, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to set nickname: %w", err)
	}
	return nil
}

// UpdatePresence pushes status and activity over the gateway
func (c *DiscordClient) UpdatePresence(_ context.Context, presence models.Presence) error {
	if err := c.session.UpdateStatusComplex(toUpdateStatusData(presence)); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

func toMessageSend(reply models.Reply) *discordgo.MessageSend {
	data := &discordgo.MessageSend{Content: reply.Text}

	if reply.AttachmentURL != "" {
		data.Content = strings.TrimSpace(reply.Text + "\n" + reply.AttachmentURL)
	}

	if reply.Embed != nil {
		embed := &discordgo.MessageEmbed{
			Title:       reply.Embed.Title,
			Description: reply.Embed.Description,
			Color:       reply.Embed.Color,
		}
		if reply.Embed.Footer != "" {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: reply.Embed.Footer}
		}
		if reply.Embed.ImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: reply.Embed.ImageURL}
		}
		data.Embeds = []*discordgo.MessageEmbed{embed}
	}

	return data
}

func toGuildInfo(guild *discordgo.Guild) *models.GuildInfo {
	memberCount := guild.MemberCount
	if memberCount == 0 {
		memberCount = guild.ApproximateMemberCount
	}

	roles := make([]string, 0, len(guild.Roles))
	for _, role := range guild.Roles {
		roles = append(roles, role.Name)
	}

	emojis := make([]string, 0, len(guild.Emojis))
	for _, emoji := range guild.Emojis {
		emojis = append(emojis, emoji.MessageFormat())
	}

	return &models.GuildInfo{
		ID:          guild.ID,
		Name:        guild.Name,
		MemberCount: memberCount,
		OwnerID:     guild.OwnerID,
		RoleNames:   roles,
		Emojis:      emojis,
	}
}

var activityTypes = map[models.ActivityKind]discordgo.ActivityType{
	models.ActivityPlaying:   discordgo.ActivityTypeGame,
	models.ActivityStreaming: discordgo.ActivityTypeStreaming,
	models.ActivityListening: discordgo.ActivityTypeListening,
	models.ActivityWatching:  discordgo.ActivityTypeWatching,
	models.ActivityCompeting: discordgo.ActivityTypeCompeting,
}

func toUpdateStatusData(presence models.Presence) discordgo.UpdateStatusData {
	data := discordgo.UpdateStatusData{
		Status:     string(presence.Status),
		Activities: []*discordgo.Activity{},
	}
	if presence.Activity != nil {
		data.Activities = append(data.Activities, &discordgo.Activity{
			Name: presence.Activity.Name,
			Type: activityTypes[presence.Activity.Kind],
			URL:  presence.Activity.URL,
		})
	}
	return data
}

// channelTypeName renders a channel type the way the info commands print it
func channelTypeName(channelType discordgo.ChannelType) string {
	switch channelType {
	case discordgo.ChannelTypeGuildText:
		return "GUILD_TEXT"
	case discordgo.ChannelTypeDM:
		return "DM"
	case discordgo.ChannelTypeGuildVoice:
		return "GUILD_VOICE"
	case discordgo.ChannelTypeGroupDM:
		return "GROUP_DM"
	case discordgo.ChannelTypeGuildCategory:
		return "GUILD_CATEGORY"
	case discordgo.ChannelTypeGuildNews:
		return "GUILD_NEWS"
	case discordgo.ChannelTypeGuildStageVoice:
		return "GUILD_STAGE_VOICE"
	case discordgo.ChannelTypeGuildForum:
		return "GUILD_FORUM"
	case discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildNewsThread:
		return "THREAD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", channelType)
	}
}
