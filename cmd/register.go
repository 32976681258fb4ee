package cmd

import (
	"github.com/Sanidhya49/binsavvy-cli/client"
	"github.com/Sanidhya49/binsavvy-cli/pkg/validation"
	"github.com/spf13/cobra"
)

// registerCmd creates a new account on the platform. Registration does not
// log the user in; the server expects a separate login afterwards.
func registerCmd(app *App) *cobra.Command {
	var req client.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new BinSavvy account",
		Run: func(cmd *cobra.Command, args []string) {
			if req.Username == "" {
				req.Username = promptForInput("Username: ")
			}
			if req.Email == "" {
				req.Email = promptForInput("Email: ")
			}
			if req.Password == "" {
				req.Password = promptForPassword("Password: ")
			}

			for _, check := range []error{
				validation.ValidateNonEmptyString("username", req.Username),
				validation.ValidateNonEmptyString("email", req.Email),
				validation.ValidateNonEmptyString("password", req.Password),
			} {
				if check != nil {
					cmd.PrintErrln("Error:", check)
					return
				}
			}

			user, err := app.API.Register(cmd.Context(), req)
			if err != nil {
				cmd.PrintErrln("Error: Registration failed.")
				return
			}
			cmd.Printf("Account %s created. You can now run 'binsavvy login'.\n", user.Username)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Username (prompted when omitted)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (prompted when omitted)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number (optional)")
	cmd.Flags().StringVar(&req.Address, "address", "", "Street address (optional)")

	return cmd
}
