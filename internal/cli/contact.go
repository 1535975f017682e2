package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wifiportal/client"
)

func ContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the portal administrators",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.ContactInput{}
			in.Name, _ = cmd.Flags().GetString("name")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Subject, _ = cmd.Flags().GetString("subject")
			in.Message, _ = cmd.Flags().GetString("message")

			c, err := newClient(cmd, client.RoleTenant)
			if err != nil {
				return err
			}
			if err := c.SubmitContact(cmd.Context(), in); err != nil {
				return err
			}

			fmt.Println("Message sent")
			return nil
		},
	}

	cmd.Flags().String("name", "", "Your name")
	cmd.Flags().String("email", "", "Reply-to email address")
	cmd.Flags().String("subject", "", "Subject line (optional)")
	cmd.Flags().String("message", "", "Message body")
	for _, name := range []string{"name", "email", "message"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
