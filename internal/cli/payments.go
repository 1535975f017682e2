package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"wifiportal/client"
)

func PaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Review and submit payments",
	}

	cmd.AddCommand(
		paymentsListCmd(),
		paymentsStatusCmd(),
		paymentsUploadCmd(),
		paymentsCashCmd(),
		paymentReviewCmd("approve", "Approve a pending payment and grant access", (*client.Client).ApprovePayment),
		paymentReviewCmd("reject", "Reject a pending payment", (*client.Client).RejectPayment),
		paymentsProofCmd(),
	)

	return cmd
}

func paymentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all payments (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			status, _ := cmd.Flags().GetString("status")
			watch, _ := cmd.Flags().GetBool("watch")

			c, err := authedClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}

			if watch {
				watchList(cmd.Context(), os.Stdout, adminPollInterval,
					c.ListPayments,
					func(w io.Writer, payments []client.Payment) {
						printPayments(w, client.FilterPayments(payments, search, status))
					})
				return nil
			}

			payments, err := c.ListPayments(cmd.Context())
			if err != nil {
				return err
			}
			printPayments(os.Stdout, client.FilterPayments(payments, search, status))
			return nil
		},
	}

	cmd.Flags().String("search", "", "Filter by tenant name, room or payment type")
	cmd.Flags().String("status", client.FilterAll, "Filter by status: all, pending, approved, rejected")
	cmd.Flags().Bool("watch", false, "Keep the list refreshed until interrupted")

	return cmd
}

func paymentsStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your own payment history (tenant)",
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")

			c, err := authedClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}

			if watch {
				watchList(cmd.Context(), os.Stdout, tenantPollInterval,
					c.PaymentStatus, printPayments)
				return nil
			}

			payments, err := c.PaymentStatus(cmd.Context())
			if err != nil {
				return err
			}
			printPayments(os.Stdout, payments)
			return nil
		},
	}

	cmd.Flags().Bool("watch", false, "Keep the history refreshed until interrupted")

	return cmd
}

func paymentsUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a proof-of-payment file (JPG, PNG or PDF, max 5MB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			payment, err := c.UploadProof(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Uploaded %s, awaiting review (payment %s)\n", payment.FileName, payment.ID)
			return nil
		},
	}
}

func paymentsCashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cash",
		Short: "Record a cash payment pending admin confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			payment, err := c.SubmitCash(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Cash payment recorded, awaiting review (payment %s)\n", payment.ID)
			return nil
		},
	}
}

func paymentReviewCmd(use, short string, review func(*client.Client, context.Context, string) (client.Payment, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <payment-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}
			payment, err := review(c, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(payment)
		},
	}
}

func paymentsProofCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proof <payment-id>",
		Short: "Print a viewable URL for a proof-of-payment file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}

			fmt.Println(c.ProofURL(args[0]))
			return nil
		},
	}
}

func printPayments(out io.Writer, payments []client.Payment) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTENANT\tROOM\tTYPE\tSTATUS\tFILE\tUPLOADED")
	for _, p := range payments {
		name, room := "-", "-"
		if p.Tenant != nil {
			name, room = p.Tenant.Name, p.Tenant.RoomNumber
		}
		file := p.FileName
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, name, room, p.Type, p.Status, file, p.UploadedAt.Format(time.DateTime))
	}
	w.Flush()
	fmt.Fprintf(out, "%d payment(s)\n", len(payments))
}
