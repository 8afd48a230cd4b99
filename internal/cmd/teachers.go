package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var teachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "Manage teachers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var teachersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teachers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListTeachers(cmd.Context(), listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		rows := make([][]string, 0, len(resp.Teachers))
		for _, t := range resp.Teachers {
			rows = append(rows, []string{fmt.Sprint(t.ID), t.FullName(), t.Email, t.Status})
		}
		ux.Table(os.Stdout, []string{"ID", "NAME", "EMAIL", "STATUS"}, rows)
		ux.PageFooter(os.Stdout, len(rows), resp.TotalCount, resp.Page)
		return nil
	},
}

var teachersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a teacher",
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

		teacher, err := a.client.GetTeacher(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, teacher); handled {
			return err
		}

		fmt.Printf("ID:      %d\n", teacher.ID)
		fmt.Printf("Name:    %s\n", teacher.FullName())
		fmt.Printf("Email:   %s\n", teacher.Email)
		fmt.Printf("Status:  %s\n", teacher.Status)
		if teacher.SubjectID > 0 {
			fmt.Printf("Subject: %d\n", teacher.SubjectID)
		}
		return nil
	},
}

var teachersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a teacher",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.TeacherRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.SubjectID, _ = cmd.Flags().GetInt64("subject-id")

		teacher, err := a.client.CreateTeacher(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Created teacher %d (%s)\n", teacher.ID, teacher.FullName())
		return nil
	},
}

var teachersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a teacher",
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

		req := api.TeacherRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.SubjectID, _ = cmd.Flags().GetInt64("subject-id")

		teacher, err := a.client.UpdateTeacher(cmd.Context(), id, req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Updated teacher %d (%s)\n", teacher.ID, teacher.FullName())
		return nil
	},
}

var teachersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a teacher",
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

		ok, err := confirmDelete(cmd, fmt.Sprintf("teacher %d", id))
		if err != nil || !ok {
			return err
		}

		if err := a.client.DeleteTeacher(cmd.Context(), id); err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Deleted teacher %d\n", id)
		return nil
	},
}

func init() {
	teachersCmd.AddCommand(teachersListCmd)
	teachersCmd.AddCommand(teachersGetCmd)
	teachersCmd.AddCommand(teachersCreateCmd)
	teachersCmd.AddCommand(teachersUpdateCmd)
	teachersCmd.AddCommand(teachersDeleteCmd)

	addListFlags(teachersListCmd)
	addOutputFlag(teachersGetCmd)

	for _, c := range []*cobra.Command{teachersCreateCmd, teachersUpdateCmd} {
		c.Flags().String("first-name", "", "First name")
		c.Flags().String("last-name", "", "Last name")
		c.Flags().String("email", "", "Email address")
		c.Flags().Int64("subject-id", 0, "Primary subject ID")
	}
	teachersDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(teachersCmd)
}
