package commands

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/models"
	"selfbot/services/session"
	"selfbot/utils"
)

// BotVersion is reported by the botversion command
const BotVersion = "Version 2.0 - Enhanced with APIs"

// Category groups commands in the help listing
type Category string

const (
	CategoryUtility    Category = "utility"
	CategoryFun        Category = "fun"
	CategoryText       Category = "text"
	CategoryAutomation Category = "automation"
	CategoryInfo       Category = "info"
	CategoryGame       Category = "game"
	CategoryStatus     Category = "status"
	CategoryMisc       Category = "misc"
)

var categoryOrder = []Category{
	CategoryUtility,
	CategoryFun,
	CategoryText,
	CategoryAutomation,
	CategoryInfo,
	CategoryGame,
	CategoryStatus,
	CategoryMisc,
}

// Invocation carries one parsed command together with the message it came from
type Invocation struct {
	Message models.InboundMessage
	Args    []string
}

// Joined returns the arguments re-joined with single spaces
func (i Invocation) Joined() string {
	return strings.Join(i.Args, " ")
}

// Arg returns the argument at index if present
func (i Invocation) Arg(index int) mo.Option[string] {
	if index < 0 || index >= len(i.Args) {
		return mo.None[string]()
	}
	return mo.Some(i.Args[index])
}

// Handler produces the outcome of a command.
// None means no reply; a returned error is surfaced by the dispatcher.
type Handler func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error)

type Command struct {
	Name     string
	Category Category
	Usage    string
	Handler  Handler
}

// CommandsService owns the static command table and the collaborators its handlers close over
type CommandsService struct {
	state            *session.State
	chatClient       clients.ChatClient
	enrichmentClient clients.EnrichmentClient
	assistantClient  mo.Option[clients.AssistantClient]
	prefix           string
	shutdown         func()
	startedAt        time.Time

	// overridable in tests
	intN     func(n int) int
	now      func() time.Time
	nameFunc func(fallback string) string

	commands map[string]Command
}

func NewCommandsService(
	state *session.State,
	chatClient clients.ChatClient,
	enrichmentClient clients.EnrichmentClient,
	assistantClient mo.Option[clients.AssistantClient],
	prefix string,
	shutdown func(),
) *CommandsService {
	utils.AssertInvariant(state != nil, "session state must not be nil")
	utils.AssertInvariant(chatClient != nil, "chat client must not be nil")
	utils.AssertInvariant(enrichmentClient != nil, "enrichment client must not be nil")
	utils.AssertInvariant(prefix != "", "command prefix must not be empty")

	s := &CommandsService{
		state:            state,
		chatClient:       chatClient,
		enrichmentClient: enrichmentClient,
		assistantClient:  assistantClient,
		prefix:           prefix,
		shutdown:         shutdown,
		startedAt:        time.Now(),
		intN:             rand.IntN,
		now:              time.Now,
		nameFunc:         newNameGenerator().Next,
	}

	s.commands = make(map[string]Command)
	for _, group := range [][]Command{
		s.utilityCommands(),
		s.funCommands(),
		s.textCommands(),
		s.automationCommands(),
		s.infoCommands(),
		s.gameCommands(),
		s.statusCommands(),
		s.miscCommands(),
	} {
		for _, cmd := range group {
			_, duplicate := s.commands[cmd.Name]
			utils.AssertInvariant(!duplicate, "duplicate command name: "+cmd.Name)
			s.commands[cmd.Name] = cmd
		}
	}

	log.Printf("✅ Registered %d commands with prefix %q", len(s.commands), prefix)
	return s
}

// Lookup finds a command by its lowercase name
func (s *CommandsService) Lookup(name string) mo.Option[Command] {
	cmd, ok := s.commands[name]
	if !ok {
		return mo.None[Command]()
	}
	return mo.Some(cmd)
}

func (s *CommandsService) Prefix() string {
	return s.prefix
}

func (s *CommandsService) Count() int {
	return len(s.commands)
}

// Categories returns command names per category, sorted by name
func (s *CommandsService) Categories() map[Category][]string {
	result := make(map[Category][]string)
	for name, cmd := range s.commands {
		result[cmd.Category] = append(result[cmd.Category], name)
	}
	for _, names := range result {
		sort.Strings(names)
	}
	return result
}

func (s *CommandsService) helpText() string {
	categories := s.Categories()
	var b strings.Builder
	for _, category := range categoryOrder {
		names := categories[category]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", capitalize(string(category)), strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Total %d commands. Prefix: %s", len(s.commands), s.prefix)
	return utils.TruncateRunes(b.String(), utils.MaxListReplyLength)
}

func (s *CommandsService) randomChoice(options []string) string {
	return options[s.intN(len(options))]
}

func text(body string) mo.Option[models.Reply] {
	return mo.Some(models.Reply{Text: body})
}

func textf(format string, args ...any) mo.Option[models.Reply] {
	return text(fmt.Sprintf(format, args...))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
