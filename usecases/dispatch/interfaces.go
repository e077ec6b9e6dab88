package dispatch

import (
	"github.com/samber/mo"

	"selfbot/services/commands"
)

// CommandRegistry resolves command names to handlers
type CommandRegistry interface {
	Lookup(name string) mo.Option[commands.Command]
	Prefix() string
}

// ErrorReporter receives failures that reached the dispatcher's boundary
type ErrorReporter interface {
	ReportError(err error, context string)
}
