package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfbot/models"
)

func TestToMessageSend(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		data := toMessageSend(models.Reply{Text: "Pong!"})
		assert.Equal(t, "Pong!", data.Content)
		assert.Empty(t, data.Embeds)
	})

	t.Run("attachment url is appended", func(t *testing.T) {
		data := toMessageSend(models.Reply{AttachmentURL: "https://cdn.example.com/a.png"})
		assert.Equal(t, "https://cdn.example.com/a.png", data.Content)

		data = toMessageSend(models.Reply{Text: "avatar:", AttachmentURL: "https://cdn.example.com/a.png"})
		assert.Equal(t, "avatar:\nhttps://cdn.example.com/a.png", data.Content)
	})

	t.Run("embed", func(t *testing.T) {
		data := toMessageSend(models.Reply{Embed: &models.Embed{
			Title:       "Distracted Boyfriend",
			Description: "Here's your meme!",
			Color:       0x0099ff,
			Footer:      "Powered by Imgflip",
			ImageURL:    "https://i.imgflip.com/1ur9b0.jpg",
		}})

		require.Len(t, data.Embeds, 1)
		embed := data.Embeds[0]
		assert.Equal(t, "Distracted Boyfriend", embed.Title)
		assert.Equal(t, 0x0099ff, embed.Color)
		assert.Equal(t, "Powered by Imgflip", embed.Footer.Text)
		assert.Equal(t, "https://i.imgflip.com/1ur9b0.jpg", embed.Image.URL)
	})

	t.Run("embed without footer or image", func(t *testing.T) {
		data := toMessageSend(models.Reply{Embed: &models.Embed{Title: "t"}})
		require.Len(t, data.Embeds, 1)
		assert.Nil(t, data.Embeds[0].Footer)
		assert.Nil(t, data.Embeds[0].Image)
	})
}

func TestToUpdateStatusData(t *testing.T) {
	t.Run("status only", func(t *testing.T) {
		data := toUpdateStatusData(models.Presence{Status: models.PresenceIdle})
		assert.Equal(t, "idle", data.Status)
		assert.Empty(t, data.Activities)
	})

	t.Run("streaming activity", func(t *testing.T) {
		data := toUpdateStatusData(models.Presence{
			Status: models.PresenceOnline,
			Activity: &models.Activity{
				Kind: models.ActivityStreaming,
				Name: "speedruns",
				URL:  "https://twitch.tv/example",
			},
		})
		require.Len(t, data.Activities, 1)
		assert.Equal(t, discordgo.ActivityTypeStreaming, data.Activities[0].Type)
		assert.Equal(t, "speedruns", data.Activities[0].Name)
		assert.Equal(t, "https://twitch.tv/example", data.Activities[0].URL)
	})

	t.Run("activity kinds map", func(t *testing.T) {
		expected := map[models.ActivityKind]discordgo.ActivityType{
			models.ActivityPlaying:   discordgo.ActivityTypeGame,
			models.ActivityListening: discordgo.ActivityTypeListening,
			models.ActivityWatching:  discordgo.ActivityTypeWatching,
			models.ActivityCompeting: discordgo.ActivityTypeCompeting,
		}
		for kind, activityType := range expected {
			data := toUpdateStatusData(models.Presence{Activity: &models.Activity{Kind: kind, Name: "x"}})
			assert.Equal(t, activityType, data.Activities[0].Type, string(kind))
		}
	})
}

func TestToGuildInfo(t *testing.T) {
	guild := &discordgo.Guild{
		ID:                     "guild-1",
		Name:                   "Gophers",
		OwnerID:                "owner-1",
		ApproximateMemberCount: 42,
		Roles: []*discordgo.Role{
			{Name: "@everyone"},
			{Name: "mods"},
		},
		Emojis: []*discordgo.Emoji{
			{ID: "123", Name: "gopher"},
		},
	}

	info := toGuildInfo(guild)

	assert.Equal(t, "Gophers", info.Name)
	assert.Equal(t, 42, info.MemberCount)
	assert.Equal(t, "owner-1", info.OwnerID)
	assert.Equal(t, []string{"@everyone", "mods"}, info.RoleNames)
	assert.Equal(t, []string{"<:gopher:123>"}, info.Emojis)
}

func TestChannelTypeName(t *testing.T) {
	assert.Equal(t, "GUILD_TEXT", channelTypeName(discordgo.ChannelTypeGuildText))
	assert.Equal(t, "DM", channelTypeName(discordgo.ChannelTypeDM))
	assert.Equal(t, "THREAD", channelTypeName(discordgo.ChannelTypeGuildPublicThread))
	assert.Equal(t, "UNKNOWN(99)", channelTypeName(discordgo.ChannelType(99)))
}
