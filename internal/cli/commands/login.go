package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with an Itemhub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(username, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set ITEMHUB_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set ITEMHUB_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runLogin(username, password, serverAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("ITEMHUB_USERNAME")
	}
	if password == "" {
		password = os.Getenv("ITEMHUB_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or ITEMHUB_USERNAME env var)")
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or ITEMHUB_PASSWORD env var)")
		}
	}

	_, store, err := newSession(server)
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s (%s)...\n", server.Alias, server.URL)

	if err := store.Login(username, password); err != nil {
		return err
	}

	fmt.Println("✓ Login successful!")
	if user := store.User(); user != nil {
		fmt.Printf("  User: %s\n", user.Email)
		if user.IsAdmin() {
			fmt.Println("  Role: Admin")
		}
	}
	if store.Token() == "" {
		fmt.Println("⚠ Server did not return a token; authenticated commands may fail")
	}

	return nil
}
