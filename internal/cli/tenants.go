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

func TenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "List and manage tenants (admin)",
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
					c.ListTenants,
					func(w io.Writer, tenants []client.Tenant) {
						printTenants(w, client.FilterTenants(tenants, search, status))
					})
				return nil
			}

			tenants, err := c.ListTenants(cmd.Context())
			if err != nil {
				return err
			}
			printTenants(os.Stdout, client.FilterTenants(tenants, search, status))
			return nil
		},
	}

	cmd.Flags().String("search", "", "Filter by name, room, phone or email")
	cmd.Flags().String("status", client.FilterAll, "Filter by status: all, active, inactive, blocked")
	cmd.Flags().Bool("watch", false, "Keep the list refreshed until interrupted")

	cmd.AddCommand(
		tenantActionCmd("activate", "Grant WiFi access to a tenant", (*client.Client).ActivateTenant),
		tenantActionCmd("deactivate", "Revoke a tenant's WiFi access", (*client.Client).DeactivateTenant),
		tenantActionCmd("block", "Block a tenant", (*client.Client).BlockTenant),
		tenantActionCmd("unblock", "Unblock a tenant", (*client.Client).UnblockTenant),
		tenantActionCmd("approve", "Approve a pending registration", (*client.Client).ApproveTenant),
		tenantDeleteCmd(),
	)

	return cmd
}

func tenantActionCmd(use, short string, action func(*client.Client, context.Context, string) (client.Tenant, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tenant-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}
			tenant, err := action(c, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(tenant)
		},
	}
}

func tenantDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tenant-id>",
		Short: "Delete a tenant and their payment records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("deletion removes the tenant and all proof files, pass --yes to confirm")
			}

			c, err := authedClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}
			if err := c.DeleteTenant(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("Tenant deleted")
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Confirm deletion")

	return cmd
}

func printTenants(out io.Writer, tenants []client.Tenant) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROOM\tPHONE\tSTATUS\tWIFI\tEXPIRES")
	for _, t := range tenants {
		expires := "-"
		if t.ExpiryDate != nil {
			expires = t.ExpiryDate.Format(time.DateOnly)
		}
		wifi := "off"
		if t.WifiAccess {
			wifi = "on"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.RoomNumber, t.Phone, t.Status, wifi, expires)
	}
	w.Flush()
	fmt.Fprintf(out, "%d tenant(s)\n", len(tenants))
}
