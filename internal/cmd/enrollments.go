package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var enrollmentsCmd = &cobra.Command{
	Use:   "enrollments",
	Short: "Manage enrollments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var enrollmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrollments",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		courseID, _ := cmd.Flags().GetInt64("course-id")
		resp, err := a.client.ListEnrollments(cmd.Context(), courseID, listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		rows := make([][]string, 0, len(resp.Enrollments))
		for _, e := range resp.Enrollments {
			rows = append(rows, []string{
				fmt.Sprint(e.ID), fmt.Sprint(e.StudentID), fmt.Sprint(e.CourseID), e.Status,
			})
		}
		ux.Table(os.Stdout, []string{"ID", "STUDENT", "COURSE", "STATUS"}, rows)
		ux.PageFooter(os.Stdout, len(rows), resp.TotalCount, resp.Page)
		return nil
	},
}

var enrollmentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Enroll a student in a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.EnrollmentRequest{}
		req.StudentID, _ = cmd.Flags().GetInt64("student-id")
		req.CourseID, _ = cmd.Flags().GetInt64("course-id")

		enrollment, err := a.client.CreateEnrollment(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Enrolled student %d in course %d (enrollment %d)\n",
			enrollment.StudentID, enrollment.CourseID, enrollment.ID)
		return nil
	},
}

var enrollmentsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Withdraw an enrollment",
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

		ok, err := confirmDelete(cmd, fmt.Sprintf("enrollment %d", id))
		if err != nil || !ok {
			return err
		}

		if err := a.client.DeleteEnrollment(cmd.Context(), id); err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Withdrew enrollment %d\n", id)
		return nil
	},
}

func init() {
	enrollmentsCmd.AddCommand(enrollmentsListCmd)
	enrollmentsCmd.AddCommand(enrollmentsAddCmd)
	enrollmentsCmd.AddCommand(enrollmentsRemoveCmd)

	addListFlags(enrollmentsListCmd)
	enrollmentsListCmd.Flags().Int64("course-id", 0, "Filter by course")

	enrollmentsAddCmd.Flags().Int64("student-id", 0, "Student ID")
	enrollmentsAddCmd.Flags().Int64("course-id", 0, "Course ID")
	enrollmentsRemoveCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(enrollmentsCmd)
}
