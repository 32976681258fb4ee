package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sanidhya49/binsavvy-cli/pkg/clierr"
	"github.com/Sanidhya49/binsavvy-cli/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// imagesCmd groups the commands that manage uploaded images.
func imagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage uploaded waste images",
	}

	cmd.AddCommand(
		imagesListCmd(app),
		imagesDeleteCmd(app),
		imagesReprocessCmd(app),
	)

	return cmd
}

func imagesListCmd(app *App) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded images",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if local {
				uploads, err := app.Uploads.List(ctx)
				if err != nil {
					cmd.PrintErrln("Error: failed to read the local history.")
					return
				}
				if len(uploads) == 0 {
					cmd.Println("No uploads recorded on this machine.")
					return
				}
				table := newTable([]string{"Remote ID", "File", "Status", "Uploaded At"})
				for _, u := range uploads {
					table.Append([]string{
						u.RemoteID,
						u.FilePath,
						u.Status,
						u.UploadedAt.Format("2006-01-02 15:04"),
					})
				}
				table.Render()
				return
			}

			if !ensureSession(ctx, app, cmd) {
				return
			}
			images, err := app.API.ListImages(ctx)
			if err != nil {
				cmd.PrintErrln("Error: failed to list images.")
				return
			}
			if len(images) == 0 {
				cmd.Println("No images uploaded yet.")
				return
			}

			table := newTable([]string{"ID", "Status", "Detections", "Location"})
			for _, img := range images {
				location := img.Address
				if location == "" {
					location = fmt.Sprintf("%.4f, %.4f", img.Latitude, img.Longitude)
				}
				table.Append([]string{
					img.ID,
					img.Status,
					fmt.Sprintf("%d", img.Detections),
					strings.ReplaceAll(location, "\n", " "),
				})
			}
			table.Render()
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "List the upload history recorded on this machine")

	return cmd
}

func imagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <image-id>",
		Short: "Delete an uploaded image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if !ensureSession(ctx, app, cmd) {
				return
			}
			id := args[0]
			if err := validation.ValidateImageID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			if err := app.API.DeleteImage(ctx, id); err != nil {
				cmd.PrintErrln("Error:", categorize(err, clierr.Internal, "failed to delete image "+id))
				return
			}
			if err := app.Uploads.DeleteByRemoteID(ctx, id); err != nil {
				cmd.PrintErrln("Warning: deleted remotely, but the local history could not be updated.")
			}
			cmd.Println("Deleted", id)
		},
	}
}

func imagesReprocessCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reprocess <image-id>",
		Short: "Run waste detection on an image again",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if !ensureAdmin(ctx, app, cmd) {
				return
			}
			id := args[0]
			if err := validation.ValidateImageID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			record, err := app.API.ReprocessImage(ctx, id)
			if err != nil {
				cmd.PrintErrln("Error:", categorize(err, clierr.Internal, "failed to reprocess image "+id))
				return
			}
			cmd.Printf("Image %s queued for analysis (status: %s).\n", record.ID, record.Status)
		},
	}
}

// newTable builds a table with the house style shared by all listings.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}
