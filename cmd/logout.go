package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd ends the session. The server call is best effort: the local
// session is cleared even when the network is down.
func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from BinSavvy",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if app.Session.IsAuthenticated(ctx) {
				if err := app.API.Logout(ctx); err != nil {
					log.Warn().Err(err).Msg("Server logout failed, clearing local session anyway")
				}
			}

			if err := app.Session.ClearTokens(ctx); err != nil {
				cmd.PrintErrln("Error: Failed to clear the local session.")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}
