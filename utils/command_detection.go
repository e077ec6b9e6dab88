package utils

import (
	"strings"

	"github.com/samber/mo"

	"selfbot/models"
)

// ParseCommand extracts the command name and arguments from a prefixed message.
// Returns None when the content does not start with the prefix.
func ParseCommand(content, prefix string) mo.Option[models.ParsedCommand] {
	AssertInvariant(prefix != "", "command prefix cannot be empty")

	if !strings.HasPrefix(content, prefix) {
		return mo.None[models.ParsedCommand]()
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		// A bare prefix still addresses the bot, it just names no command
		return mo.Some(models.ParsedCommand{Name: "", Args: []string{}})
	}

	return mo.Some(models.ParsedCommand{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	})
}
