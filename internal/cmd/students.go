package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage students",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	Long: `List students with pagination and filtering.

With --by-status the page is grouped client-side by account status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListStudents(cmd.Context(), listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		headers := []string{"ID", "NAME", "EMAIL", "STATUS"}
		if byStatus, _ := cmd.Flags().GetBool("by-status"); byStatus {
			statuses, groups := ux.Group(resp.Students, func(s api.Student) string { return s.Status })
			for _, status := range statuses {
				fmt.Printf("%s:\n", status)
				rows := studentRows(groups[status])
				ux.Table(os.Stdout, headers, rows)
				fmt.Println()
			}
		} else {
			ux.Table(os.Stdout, headers, studentRows(resp.Students))
		}
		ux.PageFooter(os.Stdout, len(resp.Students), resp.TotalCount, resp.Page)
		return nil
	},
}

func studentRows(students []api.Student) [][]string {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{fmt.Sprint(s.ID), s.FullName(), s.Email, s.Status})
	}
	return rows
}

var studentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a student",
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

		student, err := a.client.GetStudent(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, student); handled {
			return err
		}

		fmt.Printf("ID:     %d\n", student.ID)
		fmt.Printf("Name:   %s\n", student.FullName())
		fmt.Printf("Email:  %s\n", student.Email)
		fmt.Printf("Status: %s\n", student.Status)
		return nil
	},
}

var studentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.StudentRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Status, _ = cmd.Flags().GetString("status")

		student, err := a.client.CreateStudent(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Created student %d (%s)\n", student.ID, student.FullName())
		return nil
	},
}

var studentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a student",
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

		req := api.StudentRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Status, _ = cmd.Flags().GetString("status")

		student, err := a.client.UpdateStudent(cmd.Context(), id, req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Updated student %d (%s)\n", student.ID, student.FullName())
		return nil
	},
}

var studentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a student",
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

		ok, err := confirmDelete(cmd, fmt.Sprintf("student %d", id))
		if err != nil || !ok {
			return err
		}

		if err := a.client.DeleteStudent(cmd.Context(), id); err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Deleted student %d\n", id)
		return nil
	},
}

func init() {
	studentsCmd.AddCommand(studentsListCmd)
	studentsCmd.AddCommand(studentsGetCmd)
	studentsCmd.AddCommand(studentsCreateCmd)
	studentsCmd.AddCommand(studentsUpdateCmd)
	studentsCmd.AddCommand(studentsDeleteCmd)

	addListFlags(studentsListCmd)
	addOutputFlag(studentsGetCmd)
	studentsListCmd.Flags().Bool("by-status", false, "Group output by status")

	for _, c := range []*cobra.Command{studentsCreateCmd, studentsUpdateCmd} {
		c.Flags().String("first-name", "", "First name")
		c.Flags().String("last-name", "", "Last name")
		c.Flags().String("email", "", "Email address")
		c.Flags().String("status", "", "Account status (active, suspended, graduated)")
	}
	studentsDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(studentsCmd)
}
