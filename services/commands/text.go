package commands

import (
	"context"

	"github.com/samber/mo"

	"selfbot/models"
	"selfbot/services/transform"
)

func (s *CommandsService) textCommands() []Command {
	return []Command{
		s.transformCommand("reverse", transform.Reverse),
		s.transformCommand("uppercase", transform.Upper),
		s.transformCommand("lowercase", transform.Lower),
		s.transformCommand("leet", transform.Leet),
		s.transformCommand("emojify", transform.Emojify),
		s.transformCommand("vaporwave", transform.Vaporwave),
		s.transformCommand("mock", transform.Mock),
		s.wordsCommand("clap", transform.Clap),
		s.wordsCommand("space", transform.Space),
		s.transformCommand("binary", transform.Binary),
		s.transformCommand("bold", transform.Bold),
		s.transformCommand("italic", transform.Italic),
		s.transformCommand("underline", transform.Underline),
		s.transformCommand("strikethrough", transform.Strikethrough),
		s.transformCommand("code", transform.Code),
		s.transformCommand("spoiler", transform.Spoiler),
		s.transformCommand("block", transform.Block),
		s.transformCommand("zalgo", func(input string) string { return transform.Zalgo(input, nil) }),
		s.transformCommand("rot13", transform.Rot13),
		s.transformCommand("morse", transform.Morse),
	}
}

// transformCommand applies fn to the space-joined arguments
func (s *CommandsService) transformCommand(name string, fn func(string) string) Command {
	usage := name + " [text]"
	return Command{
		Name:     name,
		Category: CategoryText,
		Usage:    usage,
		Handler: func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
			if len(inv.Args) == 0 {
				return s.usageReply(usage), nil
			}
			return text(fn(inv.Joined())), nil
		},
	}
}

// wordsCommand applies fn to the argument list itself
func (s *CommandsService) wordsCommand(name string, fn func([]string) string) Command {
	usage := name + " [words...]"
	return Command{
		Name:     name,
		Category: CategoryText,
		Usage:    usage,
		Handler: func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
			if len(inv.Args) == 0 {
				return s.usageReply(usage), nil
			}
			return text(fn(inv.Args)), nil
		},
	}
}
