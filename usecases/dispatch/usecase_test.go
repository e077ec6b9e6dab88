package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"selfbot/clients"
	discordclient "selfbot/clients/discord"
	"selfbot/clients/enrichment"
	"selfbot/core"
	"selfbot/models"
	"selfbot/services/commands"
	"selfbot/services/session"
)

const (
	testSelfID    = "self-1"
	testFriendID  = "friend-1"
	testChannelID = "channel-1"
	testGuildID   = "guild-1"
)

// MockErrorReporter is a mock implementation of the ErrorReporter interface
type MockErrorReporter struct {
	mock.Mock
}

func (m *MockErrorReporter) ReportError(err error, context string) {
	m.Called(err, context)
}

type dispatchTestFixture struct {
	useCase          *DispatchUseCase
	state            *session.State
	chatClient       *discordclient.MockDiscordClient
	enrichmentClient *enrichment.MockEnrichmentClient
	errorReporter    *MockErrorReporter
	ctx              context.Context
}

func newDispatchTestFixture(t *testing.T) *dispatchTestFixture {
	f := &dispatchTestFixture{
		state:            session.NewState(),
		chatClient:       &discordclient.MockDiscordClient{},
		enrichmentClient: &enrichment.MockEnrichmentClient{},
		errorReporter:    &MockErrorReporter{},
		ctx:              context.Background(),
	}
	t.Cleanup(f.state.Close)

	f.chatClient.On("SelfUser").Return(models.SelfUser{ID: testSelfID, Tag: "me#0001"}).Maybe()

	registry := commands.NewCommandsService(
		f.state,
		f.chatClient,
		f.enrichmentClient,
		mo.None[clients.AssistantClient](),
		"!",
		nil,
	)
	f.useCase = NewDispatchUseCase(f.chatClient, registry, f.state, f.errorReporter)
	return f
}

func selfMessage(content string) models.InboundMessage {
	return models.InboundMessage{
		ID:        "msg-self",
		AuthorID:  testSelfID,
		Content:   content,
		ChannelID: testChannelID,
		GuildID:   mo.Some(testGuildID),
	}
}

func foreignMessage(content string, mentionsSelf bool) models.InboundMessage {
	msg := models.InboundMessage{
		ID:               "msg-foreign",
		AuthorID:         testFriendID,
		Content:          content,
		ChannelID:        testChannelID,
		GuildID:          mo.Some(testGuildID),
		MentionedUserIDs: map[string]struct{}{},
	}
	if mentionsSelf {
		msg.MentionedUserIDs[testSelfID] = struct{}{}
	}
	return msg
}

func (f *dispatchTestFixture) expectReply(msg models.InboundMessage, text string) {
	f.chatClient.On("ReplyTo", f.ctx, msg, models.Reply{Text: text}).Return("reply-id", nil).Once()
}

func TestDispatchUseCase_ReverseCommand(t *testing.T) {
	f := newDispatchTestFixture(t)
	msg := selfMessage("!reverse hello world")
	f.expectReply(msg, "dlrow olleh")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))
	f.chatClient.AssertExpectations(t)
}

func TestDispatchUseCase_Rot13Command(t *testing.T) {
	f := newDispatchTestFixture(t)
	msg := selfMessage("!ROT13 Hello")
	f.expectReply(msg, "Uryyb")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))
	f.chatClient.AssertExpectations(t)
}

func TestDispatchUseCase_GuessOutOfRange(t *testing.T) {
	f := newDispatchTestFixture(t)
	start := selfMessage("!guessnumber")
	guess := selfMessage("!guess 200")
	f.expectReply(start, "Guess a number between 1-100! Use !guess [number]")

	var guessReply string
	f.chatClient.On("ReplyTo", f.ctx, guess, mock.Anything).Run(func(args mock.Arguments) {
		guessReply = args.Get(2).(models.Reply).Text
	}).Return("reply-id", nil).Once()

	require.NoError(t, f.useCase.HandleMessage(f.ctx, start))
	require.NoError(t, f.useCase.HandleMessage(f.ctx, guess))

	assert.Equal(t, "Lower!", guessReply)
	assert.True(t, f.state.ActiveGuess().IsPresent())
	f.chatClient.AssertExpectations(t)
}

func TestDispatchUseCase_UnknownCommand(t *testing.T) {
	f := newDispatchTestFixture(t)
	msg := selfMessage("!unknownxyz")
	f.expectReply(msg, "Unknown command. Use !help for info.")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))
	f.chatClient.AssertExpectations(t)
	f.errorReporter.AssertNotCalled(t, "ReportError", mock.Anything, mock.Anything)
}

func TestDispatchUseCase_EnrichmentFailure(t *testing.T) {
	f := newDispatchTestFixture(t)
	msg := selfMessage("!catfact")
	f.enrichmentClient.On("Fetch", f.ctx, enrichment.ProviderCatFact, "").
		Return(mo.Err[clients.Payload](&core.FetchError{Provider: enrichment.ProviderCatFact, Err: errors.New("dial tcp: connection refused")}))
	f.expectReply(msg, "Failed to fetch cat fact.")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))
	f.chatClient.AssertExpectations(t)
	f.errorReporter.AssertNotCalled(t, "ReportError", mock.Anything, mock.Anything)
}

func TestDispatchUseCase_AFKMode(t *testing.T) {
	f := newDispatchTestFixture(t)
	afkOn := selfMessage("!afkon")
	afkOff := selfMessage("!afkoff")
	mention := foreignMessage("hey <@self-1>", true)

	f.expectReply(afkOn, "AFK mode enabled.")
	f.expectReply(mention, AFKNotice)
	f.expectReply(afkOff, "AFK mode disabled.")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, afkOn))
	require.NoError(t, f.useCase.HandleMessage(f.ctx, mention))
	require.NoError(t, f.useCase.HandleMessage(f.ctx, afkOff))
	require.NoError(t, f.useCase.HandleMessage(f.ctx, mention))

	f.chatClient.AssertExpectations(t)
	f.chatClient.AssertNumberOfCalls(t, "ReplyTo", 3)
}

func TestDispatchUseCase_AutomationRules(t *testing.T) {
	t.Run("all rules fire in order", func(t *testing.T) {
		f := newDispatchTestFixture(t)
		f.state.SetAFK(true)
		f.state.SetAutoReply(mo.Some("back in 5"))
		f.state.SetCopycatChannel(mo.Some(testChannelID))
		msg := foreignMessage("ping <@self-1>", true)

		var order []string
		f.chatClient.On("ReplyTo", f.ctx, msg, mock.Anything).Run(func(args mock.Arguments) {
			order = append(order, args.Get(2).(models.Reply).Text)
		}).Return("reply-id", nil).Twice()
		f.chatClient.On("SendMessage", f.ctx, testChannelID, models.Reply{Text: "ping <@self-1>"}).Run(func(args mock.Arguments) {
			order = append(order, "echo")
		}).Return("echo-id", nil).Once()

		require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))

		assert.Equal(t, []string{AFKNotice, "back in 5", "echo"}, order)
		f.chatClient.AssertExpectations(t)
	})

	t.Run("no mention only copycat", func(t *testing.T) {
		f := newDispatchTestFixture(t)
		f.state.SetAFK(true)
		f.state.SetCopycatChannel(mo.Some(testChannelID))
		msg := foreignMessage("just chatting", false)
		f.chatClient.On("SendMessage", f.ctx, testChannelID, models.Reply{Text: "just chatting"}).Return("echo-id", nil).Once()

		require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))

		f.chatClient.AssertExpectations(t)
		f.chatClient.AssertNotCalled(t, "ReplyTo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("copycat ignores other channels", func(t *testing.T) {
		f := newDispatchTestFixture(t)
		f.state.SetCopycatChannel(mo.Some("other-channel"))

		require.NoError(t, f.useCase.HandleMessage(f.ctx, foreignMessage("hello", false)))
		f.chatClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failures are joined", func(t *testing.T) {
		f := newDispatchTestFixture(t)
		f.state.SetAFK(true)
		f.state.SetCopycatChannel(mo.Some(testChannelID))
		msg := foreignMessage("<@self-1>", true)
		f.chatClient.On("ReplyTo", f.ctx, msg, mock.Anything).Return("", errors.New("missing access")).Once()
		f.chatClient.On("SendMessage", f.ctx, testChannelID, mock.Anything).Return("echo-id", nil).Once()

		err := f.useCase.HandleMessage(f.ctx, msg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send AFK notice")
		f.chatClient.AssertExpectations(t)
	})
}

func TestDispatchUseCase_CopycatEchoIsNotReentrant(t *testing.T) {
	f := newDispatchTestFixture(t)
	f.state.SetAFK(true)
	f.state.SetAutoReply(mo.Some("auto"))
	f.state.SetCopycatChannel(mo.Some(testChannelID))

	// the echo arrives back from the gateway authored by ourselves and still mentioning us
	echo := selfMessage("hey <@self-1>")
	echo.MentionedUserIDs = map[string]struct{}{testSelfID: {}}

	require.NoError(t, f.useCase.HandleMessage(f.ctx, echo))

	f.chatClient.AssertNotCalled(t, "ReplyTo", mock.Anything, mock.Anything, mock.Anything)
	f.chatClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchUseCase_IgnoresNonCommands(t *testing.T) {
	f := newDispatchTestFixture(t)

	require.NoError(t, f.useCase.HandleMessage(f.ctx, selfMessage("just talking")))
	require.NoError(t, f.useCase.HandleMessage(f.ctx, foreignMessage("!reverse abc", false)))

	f.chatClient.AssertNotCalled(t, "ReplyTo", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchUseCase_FailureBoundary(t *testing.T) {
	newFixture := func(t *testing.T, handler commands.Handler) (*DispatchUseCase, *discordclient.MockDiscordClient, *MockErrorReporter) {
		chatClient := &discordclient.MockDiscordClient{}
		chatClient.On("SelfUser").Return(models.SelfUser{ID: testSelfID})
		registry := &commands.MockCommandsService{}
		registry.On("Prefix").Return("!")
		registry.On("Lookup", "boom").Return(mo.Some(commands.Command{Name: "boom", Handler: handler}))
		reporter := &MockErrorReporter{}
		state := session.NewState()
		t.Cleanup(state.Close)
		return NewDispatchUseCase(chatClient, registry, state, reporter), chatClient, reporter
	}

	t.Run("returned error", func(t *testing.T) {
		useCase, chatClient, reporter := newFixture(t, func(ctx context.Context, inv commands.Invocation) (mo.Option[models.Reply], error) {
			return mo.None[models.Reply](), errors.New("guild unavailable")
		})
		msg := selfMessage("!boom")
		chatClient.On("ReplyTo", mock.Anything, msg, models.Reply{Text: "Error: guild unavailable"}).Return("reply-id", nil).Once()
		reporter.On("ReportError", mock.Anything, "command boom").Once()

		require.NoError(t, useCase.HandleMessage(context.Background(), msg))

		chatClient.AssertExpectations(t)
		reporter.AssertExpectations(t)
	})

	t.Run("panic", func(t *testing.T) {
		useCase, chatClient, reporter := newFixture(t, func(ctx context.Context, inv commands.Invocation) (mo.Option[models.Reply], error) {
			panic("nil map write")
		})
		msg := selfMessage("!boom")
		chatClient.On("ReplyTo", mock.Anything, msg, models.Reply{Text: "Error: command boom panicked: nil map write"}).Return("reply-id", nil).Once()
		reporter.On("ReportError", mock.MatchedBy(func(err error) bool {
			var panicErr *core.HandlerPanicError
			return errors.As(err, &panicErr) && panicErr.Command == "boom"
		}), "command boom").Once()

		require.NoError(t, useCase.HandleMessage(context.Background(), msg))

		chatClient.AssertExpectations(t)
		reporter.AssertExpectations(t)
	})

	t.Run("processing continues after a failure", func(t *testing.T) {
		calls := 0
		useCase, chatClient, reporter := newFixture(t, func(ctx context.Context, inv commands.Invocation) (mo.Option[models.Reply], error) {
			calls++
			if calls == 1 {
				panic("first call explodes")
			}
			return mo.Some(models.Reply{Text: "fine"}), nil
		})
		msg := selfMessage("!boom")
		chatClient.On("ReplyTo", mock.Anything, msg, models.Reply{Text: "Error: command boom panicked: first call explodes"}).Return("reply-id", nil).Once()
		chatClient.On("ReplyTo", mock.Anything, msg, models.Reply{Text: "fine"}).Return("reply-id", nil).Once()
		reporter.On("ReportError", mock.Anything, "command boom").Once()

		require.NoError(t, useCase.HandleMessage(context.Background(), msg))
		require.NoError(t, useCase.HandleMessage(context.Background(), msg))

		chatClient.AssertExpectations(t)
	})
}

func TestDispatchUseCase_EmbedFallback(t *testing.T) {
	embedReply := models.Reply{
		Embed:        &models.Embed{Title: "Meme", ImageURL: "https://i.imgflip.com/x.jpg"},
		FallbackText: "Meme: Meme\nhttps://i.imgflip.com/x.jpg",
	}

	chatClient := &discordclient.MockDiscordClient{}
	chatClient.On("SelfUser").Return(models.SelfUser{ID: testSelfID})
	registry := &commands.MockCommandsService{}
	registry.On("Prefix").Return("!")
	registry.On("Lookup", "meme").Return(mo.Some(commands.Command{
		Name: "meme",
		Handler: func(ctx context.Context, inv commands.Invocation) (mo.Option[models.Reply], error) {
			return mo.Some(embedReply), nil
		},
	}))
	state := session.NewState()
	defer state.Close()
	useCase := NewDispatchUseCase(chatClient, registry, state, &MockErrorReporter{})

	msg := selfMessage("!meme")
	chatClient.On("ReplyTo", mock.Anything, msg, embedReply).Return("", errors.New("embed links permission missing")).Once()
	chatClient.On("ReplyTo", mock.Anything, msg, models.Reply{Text: embedReply.FallbackText}).Return("reply-id", nil).Once()

	require.NoError(t, useCase.HandleMessage(context.Background(), msg))
	chatClient.AssertExpectations(t)
}

func TestDispatchUseCase_BarePrefix(t *testing.T) {
	f := newDispatchTestFixture(t)
	msg := selfMessage("!")
	f.expectReply(msg, "Unknown command. Use !help for info.")

	require.NoError(t, f.useCase.HandleMessage(f.ctx, msg))
	f.chatClient.AssertExpectations(t)
}
