package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session for a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runLogout(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	_, store, err := newSession(server)
	if err != nil {
		return err
	}

	// Idempotent: clearing an absent session is fine
	store.Logout()

	fmt.Printf("✓ Logged out of %s (%s)\n", server.Alias, server.URL)
	return nil
}
