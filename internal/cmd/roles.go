package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect back-office roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles and their permissions",
	Long: `List roles with their permission counts.

The roles endpoint is not paginated; filtering and paging happen
client-side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListRoles(cmd.Context())
		if err != nil {
			return ux.EnhanceError(err)
		}

		opts := listOptions(cmd)
		roles := ux.Filter(resp.Roles, opts.Search, func(r api.Role) string { return r.Name })
		total := len(roles)
		roles = ux.Page(roles, opts.Page, opts.PageSize)

		rows := make([][]string, 0, len(roles))
		for _, r := range roles {
			rows = append(rows, []string{
				fmt.Sprint(r.ID),
				r.Name,
				fmt.Sprint(len(r.Permissions)),
			})
		}
		ux.Table(os.Stdout, []string{"ID", "NAME", "PERMISSIONS"}, rows)
		ux.PageFooter(os.Stdout, len(rows), total, opts.Page)
		return nil
	},
}

var rolesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		role, err := a.client.GetRole(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, role); handled {
			return err
		}

		fmt.Printf("ID:   %d\n", role.ID)
		fmt.Printf("Name: %s\n", role.Name)
		if role.Description != "" {
			fmt.Printf("Description: %s\n", role.Description)
		}
		if len(role.Permissions) > 0 {
			fmt.Printf("Permissions:\n  %s\n", strings.Join(role.Permissions, "\n  "))
		}
		return nil
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesGetCmd)
	addListFlags(rolesListCmd)
	addOutputFlag(rolesGetCmd)
	rootCmd.AddCommand(rolesCmd)
}
