package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itemhub-dev/itemhub/internal/cli/client"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Long: `List items.

Tries the admin listing first; if the server denies it, falls back to
listing only your own items.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(serverAlias, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runList(serverAlias string, out io.Writer) error {
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

	items, adminView, err := apiClient.FetchItems(store.Token())
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		fmt.Fprintln(out, "\nCreate an item with: itemhub create <name>")
		return nil
	}

	if adminView {
		fmt.Fprintf(out, "All items on %s (%s):\n\n", server.Alias, server.URL)
	} else {
		fmt.Fprintf(out, "Your items on %s (%s):\n\n", server.Alias, server.URL)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if adminView {
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tOWNER")
		fmt.Fprintln(w, "──\t────\t───────────\t─────")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		fmt.Fprintln(w, "──\t────\t───────────")
	}

	for _, item := range items {
		if adminView {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Description, item.OwnerDisplay())
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Name, item.Description)
		}
	}

	w.Flush()

	return nil
}

// findItemByIDOrName resolves an item argument against the visible listing.
// Exact ID match wins; otherwise a unique name match is accepted.
func findItemByIDOrName(items []client.Item, arg string) (*client.Item, error) {
	for i := range items {
		if string(items[i].ID) == arg {
			return &items[i], nil
		}
	}

	var match *client.Item
	for i := range items {
		if items[i].Name == arg {
			if match != nil {
				return nil, fmt.Errorf("multiple items named '%s'; use the item ID", arg)
			}
			match = &items[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("item '%s' not found", arg)
	}
	return match, nil
}
