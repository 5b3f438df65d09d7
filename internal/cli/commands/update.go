package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	var name, description, serverAlias string

	cmd := &cobra.Command{
		Use:   "update <id-or-name>",
		Short: "Update an existing item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(args[0], name, description, cmd.Flags().Changed("description"), serverAlias)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New item name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New item description")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runUpdate(arg, name, description string, descriptionSet bool, serverAlias string) error {
	if name == "" && !descriptionSet {
		return fmt.Errorf("nothing to update (use --name and/or --description)")
	}

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

	// Unchanged fields keep their current value
	if name == "" {
		name = item.Name
	}
	if !descriptionSet {
		description = item.Description
	}

	updated, err := apiClient.UpdateItem(store.Token(), item.ID, name, description)
	if err != nil {
		return err
	}

	fmt.Println("✓ Item updated!")
	fmt.Printf("  ID:   %s\n", updated.ID)
	fmt.Printf("  Name: %s\n", updated.Name)
	if updated.Description != "" {
		fmt.Printf("  Description: %s\n", updated.Description)
	}

	return nil
}
