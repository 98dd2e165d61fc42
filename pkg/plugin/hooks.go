package plugin

import (
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
)

// RootCommandProvider contributes the root command. Only the first
// registered plugin returning a non-nil root is used.
type RootCommandProvider interface {
	Plugin
	RootCommand(cfg *config.Config) command.Command
}

// SubcommandProvider contributes subcommands anywhere in the tree.
type SubcommandProvider interface {
	Plugin
	Subcommands(cfg *config.Config) command.Contribution
}

// SubcommandCollectionProvider is the older form of SubcommandProvider for
// plugins that register several commands at once. SubcommandProvider
// accepts command.List and should be preferred.
type SubcommandCollectionProvider interface {
	Plugin
	SubcommandCollection(cfg *config.Config) []command.Contribution
}

// Configurer mutates the shared configuration before any other hook runs.
type Configurer interface {
	Plugin
	Configure(cfg *config.Config)
}

// ExceptionHandlerProvider contributes handlers that turn errors escaping
// command execution into exit codes.
type ExceptionHandlerProvider interface {
	Plugin
	ExceptionHandlers(cfg *config.Config) exception.Contribution
}
