package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/guard"
	"github.com/schoolctl/schoolctl/internal/tui"
	"github.com/schoolctl/schoolctl/internal/ux"
)

// addListFlags registers the shared pagination/filter flags.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 20, "Items per page")
	cmd.Flags().String("search", "", "Filter by substring")
}

// listOptions reads the shared flags back.
func listOptions(cmd *cobra.Command) api.ListOptions {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	search, _ := cmd.Flags().GetString("search")
	return api.ListOptions{Page: page, PageSize: pageSize, Search: search}
}

// addOutputFlag registers the machine-readable output flag.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output format: json or yaml")
}

// formatted writes item with the requested formatter. Reports false
// when no --output format was requested and the caller should print
// its human-readable view instead.
func formatted(cmd *cobra.Command, item any) (bool, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return false, nil
	}
	f, err := ux.NewFormatter(format, nil)
	if err != nil {
		return true, err
	}
	return true, f.Format(item)
}

// parseID parses the positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// requireSession rejects protected commands up front when no token is
// persisted, before any request is issued. With a token present the
// command proceeds optimistically; the transport interceptor handles
// the case where the token turns out to be invalid.
func requireSession(a *app) error {
	snapshot := a.query.Snapshot()
	if guard.Evaluate(a.store, snapshot) == guard.Redirect {
		return ux.NewErrorWithSuggestion(
			fmt.Errorf("not logged in"),
			"Run 'schoolctl auth login' to sign in")
	}
	return nil
}

// confirmDelete prompts before a destructive action unless --yes was
// passed.
func confirmDelete(cmd *cobra.Command, what string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	return tui.PromptForConfirmation(fmt.Sprintf("Delete %s?", what), false)
}
