package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wifiportal/client"
)

func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email-or-phone>",
		Short: "Log in as a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			c, err := newClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			tenant, err := c.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (room %s)\n", tenant.Name, tenant.RoomNumber)
			return nil
		},
	}

	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func AdminLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin-login <email>",
		Short: "Log in as an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			c, err := newClient(cmd, client.RoleAdmin)
			if err != nil {
				return err
			}
			admin, err := c.AdminLogin(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", admin.Name, admin.Role)
			return nil
		},
	}

	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, _ := cmd.Flags().GetBool("admin")

			sessions, err := openSessions()
			if err != nil {
				return err
			}

			role := client.RoleTenant
			if admin {
				role = client.RoleAdmin
			}
			if err := sessions.Logout(role); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}

	cmd.Flags().Bool("admin", false, "Log out the admin session instead of the tenant session")

	return cmd
}

func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new tenant account",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.RegisterInput{}
			in.Name, _ = cmd.Flags().GetString("name")
			in.RoomNumber, _ = cmd.Flags().GetString("room")
			in.IDNumber, _ = cmd.Flags().GetString("id-number")
			in.Phone, _ = cmd.Flags().GetString("phone")
			in.Email, _ = cmd.Flags().GetString("email")
			in.MACAddress, _ = cmd.Flags().GetString("mac")
			in.Password, _ = cmd.Flags().GetString("password")

			c, err := newClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			tenant, err := c.Register(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s. Your account is pending approval.\n", tenant.Name)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("room", "", "Room number")
	cmd.Flags().String("id-number", "", "South African ID number")
	cmd.Flags().String("phone", "", "South African phone number")
	cmd.Flags().String("email", "", "Email address (optional)")
	cmd.Flags().String("mac", "", "Device MAC address")
	cmd.Flags().String("password", "", "Account password (min 8 characters)")
	for _, name := range []string{"name", "room", "id-number", "phone", "mac", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in tenant profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			tenant, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(tenant)
		},
	}
}

func ForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			if err := c.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("If the email is registered, a reset token has been issued.")
			return nil
		},
	}
}

func ResetPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			c, err := newClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			if err := c.ResetPassword(cmd.Context(), args[0], password); err != nil {
				return err
			}

			fmt.Println("Password updated, you can log in now.")
			return nil
		},
	}

	cmd.Flags().String("password", "", "New password (min 8 characters)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
