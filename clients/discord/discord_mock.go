package discord

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"selfbot/models"
)

// MockDiscordClient implements the clients.ChatClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) SelfUser() models.SelfUser {
	args := m.Called()
	return args.Get(0).(models.SelfUser)
}

func (m *MockDiscordClient) Latency() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockDiscordClient) SendMessage(ctx context.Context, channelID string, reply models.Reply) (string, error) {
	args := m.Called(ctx, channelID, reply)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) ReplyTo(ctx context.Context, msg models.InboundMessage, reply models.Reply) (string, error) {
	args := m.Called(ctx, msg, reply)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	args := m.Called(ctx, channelID, messageID, emoji)
	return args.Error(0)
}

func (m *MockDiscordClient) GetChannel(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelInfo), args.Error(1)
}

func (m *MockDiscordClient) GetGuild(ctx context.Context, guildID string) (*models.GuildInfo, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildInfo), args.Error(1)
}

func (m *MockDiscordClient) CreateInvite(ctx context.Context, channelID string) (string, error) {
	args := m.Called(ctx, channelID)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) SetNickname(ctx context.Context, guildID, nickname string) error {
	args := m.Called(ctx, guildID, nickname)
	return args.Error(0)
}

func (m *MockDiscordClient) UpdatePresence(ctx context.Context, presence models.Presence) error {
	args := m.Called(ctx, presence)
	return args.Error(0)
}
