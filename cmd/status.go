package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd reports who is logged in and how the session is doing.
func statusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session status",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if !app.Session.IsAuthenticated(ctx) {
				cmd.Println("Not logged in.")
				return
			}

			user, err := app.Session.CurrentUser(ctx)
			if err != nil || user == nil {
				cmd.Println("Logged in, but the user record could not be resolved.")
				return
			}

			cmd.Println("Logged in as:", user.Username)
			cmd.Println("Role:", user.Role)
			if app.Session.IsAdmin(ctx) {
				cmd.Println("Administrator commands are available.")
			}

			access, err := app.Session.AccessToken(ctx)
			if err == nil && app.Session.IsTokenExpiringSoon(access, 0) {
				cmd.Println("Note: the access token expires soon and will be refreshed automatically.")
			}
		},
	}
}
