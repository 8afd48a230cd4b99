package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/tui"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Long: `List payments with pagination and filtering.

With --by-status the page is grouped client-side by payment status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		resp, err := a.client.ListPayments(cmd.Context(), listOptions(cmd))
		if err != nil {
			return ux.EnhanceError(err)
		}

		headers := []string{"ID", "STUDENT", "AMOUNT", "STATUS", "METHOD"}
		if byStatus, _ := cmd.Flags().GetBool("by-status"); byStatus {
			statuses, groups := ux.Group(resp.Payments, func(p api.Payment) string { return p.Status })
			for _, status := range statuses {
				fmt.Printf("%s:\n", status)
				ux.Table(os.Stdout, headers, paymentRows(groups[status]))
				fmt.Println()
			}
		} else {
			ux.Table(os.Stdout, headers, paymentRows(resp.Payments))
		}
		ux.PageFooter(os.Stdout, len(resp.Payments), resp.TotalCount, resp.Page)
		return nil
	},
}

func paymentRows(payments []api.Payment) [][]string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.StudentID),
			fmt.Sprintf("%.2f %s", p.Amount, p.Currency),
			p.Status,
			p.Method,
		})
	}
	return rows
}

var paymentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a payment",
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

		payment, err := a.client.GetPayment(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}

		if handled, err := formatted(cmd, payment); handled {
			return err
		}

		fmt.Printf("ID:      %d\n", payment.ID)
		fmt.Printf("Student: %d\n", payment.StudentID)
		fmt.Printf("Amount:  %.2f %s\n", payment.Amount, payment.Currency)
		fmt.Printf("Status:  %s\n", payment.Status)
		if payment.Method != "" {
			fmt.Printf("Method:  %s\n", payment.Method)
		}
		return nil
	},
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a payment",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := requireSession(a); err != nil {
			return err
		}

		req := api.PaymentRequest{}
		req.StudentID, _ = cmd.Flags().GetInt64("student-id")
		req.Amount, _ = cmd.Flags().GetFloat64("amount")
		req.Currency, _ = cmd.Flags().GetString("currency")
		req.Method, _ = cmd.Flags().GetString("method")

		payment, err := a.client.CreatePayment(cmd.Context(), req)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Recorded payment %d (%.2f %s)\n", payment.ID, payment.Amount, payment.Currency)
		return nil
	},
}

var paymentsRefundCmd = &cobra.Command{
	Use:   "refund <id>",
	Short: "Refund a payment",
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

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			ok, err := tui.PromptForConfirmation(fmt.Sprintf("Refund payment %d?", id), false)
			if err != nil || !ok {
				return err
			}
		}

		payment, err := a.client.RefundPayment(cmd.Context(), id)
		if err != nil {
			return ux.EnhanceError(err)
		}
		fmt.Printf("Refunded payment %d (%.2f %s)\n", payment.ID, payment.Amount, payment.Currency)
		return nil
	},
}

func init() {
	paymentsCmd.AddCommand(paymentsListCmd)
	paymentsCmd.AddCommand(paymentsGetCmd)
	paymentsCmd.AddCommand(paymentsAddCmd)
	paymentsCmd.AddCommand(paymentsRefundCmd)

	addListFlags(paymentsListCmd)
	addOutputFlag(paymentsGetCmd)
	paymentsListCmd.Flags().Bool("by-status", false, "Group output by status")

	paymentsAddCmd.Flags().Int64("student-id", 0, "Student ID")
	paymentsAddCmd.Flags().Float64("amount", 0, "Payment amount")
	paymentsAddCmd.Flags().String("currency", "USD", "Currency code")
	paymentsAddCmd.Flags().String("method", "", "Payment method")
	paymentsRefundCmd.Flags().Bool("yes", false, "Skip confirmation")

	rootCmd.AddCommand(paymentsCmd)
}
