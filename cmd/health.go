package cmd

import (
	"github.com/spf13/cobra"
)

// healthCmd pings the platform's service health endpoints.
func healthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the platform services",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if status, err := app.API.UserHealth(ctx); err != nil {
				cmd.PrintErrln("User service: unreachable")
			} else {
				cmd.Println("User service:", status.Status)
			}

			if status, err := app.API.ImageHealth(ctx); err != nil {
				cmd.PrintErrln("Image service: unreachable")
			} else {
				cmd.Println("Image service:", status.Status)
			}
		},
	}
}
