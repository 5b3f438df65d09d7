package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0], serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runDelete(arg, serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	apiClient, store, err := newSession(server)
	if err != nil {
		return err
	}

	if err := authorize(store); err != nil {
		return err
	}

	// Resolve the item against the visible listing
	items, _, err := apiClient.FetchItems(store.Token())
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	item, err := findItemByIDOrName(items, arg)
	if err != nil {
		return err
	}

	if err := apiClient.DeleteItem(store.Token(), item.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted item '%s' (%s)\n", item.Name, item.ID)
	return nil
}
