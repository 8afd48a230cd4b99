package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Manage subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListSubjects(cmd.Context(), listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		rows := make([][]string, 0, len(resp.Subjects))
		for _, s := range resp.Subjects {
			rows = append(rows, []string{fmt.Sprint(s.ID), s.Code, s.Name, s.Description})
		}
		ux.Table(os.Stdout, []string{"ID", "CODE", "NAME", "DESCRIPTION"}, rows)
		ux.PageFooter(os.Stdout, len(rows), resp.TotalCount, resp.Page)
		return nil
	},
}

var subjectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a subject",
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

		subject, err := a.client.GetSubject(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, subject); handled {
			return err
		}

		fmt.Printf("ID:          %d\n", subject.ID)
		fmt.Printf("Code:        %s\n", subject.Code)
		fmt.Printf("Name:        %s\n", subject.Name)
		fmt.Printf("Description: %s\n", subject.Description)
		return nil
	},
}

var subjectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.SubjectRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Code, _ = cmd.Flags().GetString("code")
		req.Description, _ = cmd.Flags().GetString("description")

		subject, err := a.client.CreateSubject(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Created subject %d (%s)\n", subject.ID, subject.Code)
		return nil
	},
}

var subjectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a subject",
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

		req := api.SubjectRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Code, _ = cmd.Flags().GetString("code")
		req.Description, _ = cmd.Flags().GetString("description")

		subject, err := a.client.UpdateSubject(cmd.Context(), id, req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Updated subject %d (%s)\n", subject.ID, subject.Code)
		return nil
	},
}

var subjectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a subject",
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

		ok, err := confirmDelete(cmd, fmt.Sprintf("subject %d", id))
		if err != nil || !ok {
			return err
		}

		if err := a.client.DeleteSubject(cmd.Context(), id); err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Deleted subject %d\n", id)
		return nil
	},
}

func init() {
	subjectsCmd.AddCommand(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsGetCmd)
	subjectsCmd.AddCommand(subjectsCreateCmd)
	subjectsCmd.AddCommand(subjectsUpdateCmd)
	subjectsCmd.AddCommand(subjectsDeleteCmd)

	addListFlags(subjectsListCmd)
	addOutputFlag(subjectsGetCmd)

	for _, c := range []*cobra.Command{subjectsCreateCmd, subjectsUpdateCmd} {
		c.Flags().String("name", "", "Subject name")
		c.Flags().String("code", "", "Subject code")
		c.Flags().String("description", "", "Subject description")
	}
	subjectsDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(subjectsCmd)
}
