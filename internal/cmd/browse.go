package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/errors"
	"github.com/schoolctl/schoolctl/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <resource>",
	Short: "Browse a resource interactively",
	Long: `Open an interactive table view for a resource.

Supported resources: subjects, courses, students, teachers, enrollments, payments.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		title, headers, loader, err := browseTarget(a, args[0])
		if err != nil {
			return err
		}

		model := tui.NewBrowse(a.store, a.query, title, headers, loader)
		final, err := tea.NewProgram(model).Run()
		if err != nil {
			return fmt.Errorf("running browse view: %w", err)
		}
		if m, ok := final.(tui.BrowseModel); ok && m.Redirected() {
			return errors.NewAuthRequiredError()
		}
		return nil
	},
}

func browseTarget(a *app, resource string) (string, []string, tui.RowLoader, error) {
	switch resource {
	case "subjects":
		return "Subjects", []string{"ID", "NAME", "CODE"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListSubjects(ctx, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Subjects))
			for _, s := range resp.Subjects {
				rows = append(rows, []string{fmt.Sprint(s.ID), s.Name, s.Code})
			}
			return rows, nil
		}, nil
	case "courses":
		return "Courses", []string{"ID", "NAME", "SUBJECT", "TEACHER"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListCourses(ctx, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Courses))
			for _, c := range resp.Courses {
				rows = append(rows, []string{fmt.Sprint(c.ID), c.Name, fmt.Sprint(c.SubjectID), fmt.Sprint(c.TeacherID)})
			}
			return rows, nil
		}, nil
	case "students":
		return "Students", []string{"ID", "NAME", "EMAIL", "STATUS"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListStudents(ctx, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Students))
			for _, s := range resp.Students {
				rows = append(rows, []string{fmt.Sprint(s.ID), s.FullName(), s.Email, s.Status})
			}
			return rows, nil
		}, nil
	case "teachers":
		return "Teachers", []string{"ID", "NAME", "EMAIL"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListTeachers(ctx, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Teachers))
			for _, t := range resp.Teachers {
				rows = append(rows, []string{fmt.Sprint(t.ID), t.FullName(), t.Email})
			}
			return rows, nil
		}, nil
	case "enrollments":
		return "Enrollments", []string{"ID", "STUDENT", "COURSE", "STATUS"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListEnrollments(ctx, 0, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Enrollments))
			for _, e := range resp.Enrollments {
				rows = append(rows, []string{fmt.Sprint(e.ID), fmt.Sprint(e.StudentID), fmt.Sprint(e.CourseID), e.Status})
			}
			return rows, nil
		}, nil
	case "payments":
		return "Payments", []string{"ID", "STUDENT", "AMOUNT", "STATUS"}, func(ctx context.Context) ([][]string, error) {
			resp, err := a.client.ListPayments(ctx, api.ListOptions{PageSize: 50})
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(resp.Payments))
			for _, p := range resp.Payments {
				rows = append(rows, []string{fmt.Sprint(p.ID), fmt.Sprint(p.StudentID), fmt.Sprintf("%.2f %s", p.Amount, p.Currency), p.Status})
			}
			return rows, nil
		}, nil
	default:
		return "", nil, nil, errors.NewConfigInvalidError(fmt.Sprintf("unknown resource %q", resource))
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
