package cmd

import (
	"fmt"

	"github.com/Sanidhya49/binsavvy-cli/pkg/clierr"
	"github.com/spf13/cobra"
)

// adminCmd groups the administrator-only views.
func adminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator views",
	}

	cmd.AddCommand(
		adminAnalyticsCmd(app),
		adminReportsCmd(app),
	)

	return cmd
}

func adminAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show aggregated detection analytics",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if !ensureAdmin(ctx, app, cmd) {
				return
			}

			analytics, err := app.API.Analytics(ctx)
			if err != nil {
				cmd.PrintErrln("Error:", categorize(err, clierr.Internal, "failed to fetch analytics"))
				return
			}

			cmd.Println("Total images:", analytics.TotalImages)
			cmd.Println("Processed:", analytics.ProcessedImages)
			cmd.Println("Pending:", analytics.PendingImages)
			cmd.Println("Total detections:", analytics.TotalDetections)
			if len(analytics.ByCategory) > 0 {
				table := newTable([]string{"Category", "Detections"})
				for category, count := range analytics.ByCategory {
					table.Append([]string{category, fmt.Sprintf("%d", count)})
				}
				table.Render()
			}
		},
	}
}

func adminReportsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List aggregated area reports",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if !ensureAdmin(ctx, app, cmd) {
				return
			}

			reports, err := app.API.Reports(ctx)
			if err != nil {
				cmd.PrintErrln("Error:", categorize(err, clierr.Internal, "failed to fetch reports"))
				return
			}
			if len(reports) == 0 {
				cmd.Println("No reports available.")
				return
			}

			table := newTable([]string{"ID", "Area", "Images", "Status"})
			for _, r := range reports {
				table.Append([]string{r.ID, r.Area, fmt.Sprintf("%d", r.ImageCount), r.Status})
			}
			table.Render()
		},
	}
}
