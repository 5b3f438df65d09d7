package commands

import (
	"fmt"

	"github.com/itemhub-dev/itemhub/internal/cli/client"
	"github.com/itemhub-dev/itemhub/internal/cli/config"
	"github.com/itemhub-dev/itemhub/internal/cli/guard"
	"github.com/itemhub-dev/itemhub/internal/cli/serverselect"
	"github.com/itemhub-dev/itemhub/internal/cli/session"
)

// itemsPath is the navigation target protected commands stand in for when
// the access guard is consulted
const itemsPath = "/items"

// getSelectedServer loads the project config and resolves the server.
// This is common logic used by most commands.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'itemhub init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit itemhub.json and add a valid URL")
	}

	return server, nil
}

// newSession builds the API client and a hydrated session store for a server
func newSession(server *config.Server) (*client.Client, *session.Store, error) {
	apiClient := client.New(server.URL)
	store := session.New(apiClient, session.NewStorage(server.URL))
	if err := store.Hydrate(); err != nil {
		return nil, nil, err
	}
	return apiClient, store, nil
}

// authorize consults the access guard before a protected command runs,
// mapping its navigation decisions onto CLI errors
func authorize(store *session.Store, requiredRoles ...string) error {
	decision := guard.Evaluate(store.Token(), store.User(), requiredRoles, itemsPath)
	switch decision.Action {
	case guard.Render:
		return nil
	case guard.Redirect:
		if decision.Target == guard.LoginPath {
			return fmt.Errorf("not authenticated. Please run 'itemhub login' first")
		}
		return fmt.Errorf("you don't have permission to run this command")
	default:
		return fmt.Errorf("not authorized")
	}
}
