package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runWhoami(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	_, store, err := newSession(server)
	if err != nil {
		return err
	}

	if store.Token() == "" {
		return fmt.Errorf("not authenticated. Please run 'itemhub login' first")
	}

	fmt.Printf("Server: %s (%s)\n", server.Alias, server.URL)

	user := store.User()
	if user == nil {
		// Valid intermediate state: token persisted, user record missing
		fmt.Println("User:   <not resolved; log in again to refresh>")
		return nil
	}

	fmt.Printf("User:   %s\n", user.Email)
	fmt.Printf("ID:     %s\n", user.ID)
	fmt.Printf("Role:   %s\n", user.Role)
	return nil
}
