package commands

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/itemhub-dev/itemhub/internal/cli/session"
)

// registerInput is validated locally before any network call is made
type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var email, username, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on an Itemhub server",
		Long: `Create a new account on an Itemhub server.

If no username is supplied, the local part of the email is used.
Registration does not log you in; run 'itemhub login' afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(email, password, username, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&username, "username", "", "Username (derived from email if not provided)")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runRegister(email, password, username, serverAlias string) error {
	email = strings.TrimSpace(email)

	// Prompt for password if not provided
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
	}

	// Field checks happen before any network call
	input := registerInput{Email: email, Password: password}
	if err := validator.New().Struct(input); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "Email":
				if fieldErr.Tag() == "email" {
					return fmt.Errorf("email '%s' is not a valid address", email)
				}
				return fmt.Errorf("email is required (use --email flag)")
			case "Password":
				return fmt.Errorf("password is required")
			}
		}
		return err
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	_, store, err := newSession(server)
	if err != nil {
		return err
	}

	fmt.Printf("Registering on %s (%s)...\n", server.Alias, server.URL)

	if err := store.Register(email, password, username); err != nil {
		return err
	}

	fmt.Println("✓ Registration successful!")
	fmt.Printf("\nLog in with: itemhub login --username %s\n", session.DeriveUsername(email, username))
	return nil
}
