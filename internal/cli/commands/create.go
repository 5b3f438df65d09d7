package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	var description, serverAlias string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], description, serverAlias)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Item description")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runCreate(name, description, serverAlias string) error {
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

	item, err := apiClient.CreateItem(store.Token(), name, description)
	if err != nil {
		return err
	}

	fmt.Println("✓ Item created!")
	fmt.Printf("  ID:   %s\n", item.ID)
	fmt.Printf("  Name: %s\n", item.Name)
	if item.Description != "" {
		fmt.Printf("  Description: %s\n", item.Description)
	}

	return nil
}
