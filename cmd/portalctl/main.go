package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wifiportal/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portalctl",
		Short: "WiFi portal command-line client",
	}

	rootCmd.PersistentFlags().String("server", "", "Portal API base URL (defaults to $WIFIPORTAL_SERVER)")

	rootCmd.AddCommand(
		cli.RegisterCmd(),
		cli.LoginCmd(),
		cli.AdminLoginCmd(),
		cli.LogoutCmd(),
		cli.WhoamiCmd(),
		cli.ForgotPasswordCmd(),
		cli.ResetPasswordCmd(),
		cli.TenantsCmd(),
		cli.PaymentsCmd(),
		cli.ContactCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
