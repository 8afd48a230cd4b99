package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListCourses(cmd.Context(), listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		rows := make([][]string, 0, len(resp.Courses))
		for _, c := range resp.Courses {
			rows = append(rows, []string{
				fmt.Sprint(c.ID), c.Code, c.Name,
				fmt.Sprintf("%d/%d", c.Enrolled, c.Capacity),
			})
		}
		ux.Table(os.Stdout, []string{"ID", "CODE", "NAME", "SEATS"}, rows)
		ux.PageFooter(os.Stdout, len(rows), resp.TotalCount, resp.Page)
		return nil
	},
}

var coursesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a course",
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

		course, err := a.client.GetCourse(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, course); handled {
			return err
		}

		fmt.Printf("ID:       %d\n", course.ID)
		fmt.Printf("Code:     %s\n", course.Code)
		fmt.Printf("Name:     %s\n", course.Name)
		fmt.Printf("Subject:  %d\n", course.SubjectID)
		fmt.Printf("Teacher:  %d\n", course.TeacherID)
		fmt.Printf("Seats:    %d/%d\n", course.Enrolled, course.Capacity)
		return nil
	},
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.CourseRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Code, _ = cmd.Flags().GetString("code")
		req.SubjectID, _ = cmd.Flags().GetInt64("subject-id")
		req.TeacherID, _ = cmd.Flags().GetInt64("teacher-id")
		req.Capacity, _ = cmd.Flags().GetInt("capacity")

		course, err := a.client.CreateCourse(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Created course %d (%s)\n", course.ID, course.Code)
		return nil
	},
}

var coursesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a course",
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

		req := api.CourseRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Code, _ = cmd.Flags().GetString("code")
		req.SubjectID, _ = cmd.Flags().GetInt64("subject-id")
		req.TeacherID, _ = cmd.Flags().GetInt64("teacher-id")
		req.Capacity, _ = cmd.Flags().GetInt("capacity")

		course, err := a.client.UpdateCourse(cmd.Context(), id, req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Updated course %d (%s)\n", course.ID, course.Code)
		return nil
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
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

		ok, err := confirmDelete(cmd, fmt.Sprintf("course %d", id))
		if err != nil || !ok {
			return err
		}

		if err := a.client.DeleteCourse(cmd.Context(), id); err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Deleted course %d\n", id)
		return nil
	},
}

func init() {
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesGetCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesUpdateCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)

	addListFlags(coursesListCmd)
	addOutputFlag(coursesGetCmd)

	for _, c := range []*cobra.Command{coursesCreateCmd, coursesUpdateCmd} {
		c.Flags().String("name", "", "Course name")
		c.Flags().String("code", "", "Course code")
		c.Flags().Int64("subject-id", 0, "Subject ID")
		c.Flags().Int64("teacher-id", 0, "Teacher ID")
		c.Flags().Int("capacity", 0, "Seat capacity")
	}
	coursesDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(coursesCmd)
}
