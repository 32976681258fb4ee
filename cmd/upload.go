package cmd

import (
	"os"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/client"
	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/pkg/clierr"
	"github.com/Sanidhya49/binsavvy-cli/pkg/hasher"
	"github.com/Sanidhya49/binsavvy-cli/pkg/operations"
	"github.com/Sanidhya49/binsavvy-cli/pkg/validation"
	"github.com/spf13/cobra"
)

// uploadCmd sends a geotagged waste image, or a whole directory of them, to
// the platform.
func uploadCmd(app *App) *cobra.Command {
	var (
		latitude  float64
		longitude float64
		address   string
		recursive bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "upload <file-or-directory>",
		Short: "Upload waste images for analysis",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if !ensureSession(ctx, app, cmd) {
				return
			}

			if err := validation.ValidateCoordinates(latitude, longitude); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if workers == 0 {
				workers = app.Cfg.UploadWorkers
			}
			if err := validation.ValidateWorkerCount(workers); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			target := args[0]
			info, err := os.Stat(target)
			if err != nil {
				cmd.PrintErrln("Error: cannot read", target)
				return
			}

			if info.IsDir() {
				uploadDirectory(app, cmd, target, operations.BatchOptions{
					Latitude:  latitude,
					Longitude: longitude,
					Address:   address,
					Workers:   workers,
				}, recursive)
				return
			}
			uploadSingle(app, cmd, target, latitude, longitude, address)
		},
	}

	cmd.Flags().Float64Var(&latitude, "lat", 0, "Latitude of the waste location")
	cmd.Flags().Float64Var(&longitude, "lon", 0, "Longitude of the waste location")
	cmd.Flags().StringVar(&address, "address", "", "Street address of the waste location (optional)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into subdirectories")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent uploads for directories")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func uploadSingle(app *App, cmd *cobra.Command, path string, lat, lon float64, address string) {
	ctx := cmd.Context()

	if !validation.IsImageFile(path) {
		cmd.PrintErrln("Error: not a supported image file:", path)
		return
	}

	sum, err := hasher.ChecksumFile(path)
	if err != nil {
		cmd.PrintErrln("Error: failed to read", path)
		return
	}
	if prior, err := app.Uploads.GetByHash(ctx, sum); err == nil && prior != nil {
		cmd.Printf("Already uploaded as %s, skipping.\n", prior.RemoteID)
		return
	}

	record, err := app.API.UploadImage(ctx, client.UploadRequest{
		FilePath:     path,
		Latitude:     lat,
		Longitude:    lon,
		Address:      address,
		SHA256:       sum,
		ShowProgress: true,
	})
	if err != nil {
		cmd.PrintErrln("Error:", categorize(err, clierr.Upload, "upload failed"))
		return
	}

	recordUpload(app, cmd, path, sum, lat, lon, address, record)
	cmd.Printf("Uploaded %s as %s (status: %s).\n", path, record.ID, record.Status)
}

func recordUpload(app *App, cmd *cobra.Command, path, sum string, lat, lon float64, address string, record *client.ImageRecord) {
	err := app.Uploads.Add(cmd.Context(), &db.Upload{
		RemoteID:   record.ID,
		FilePath:   path,
		SHA256:     sum,
		Latitude:   lat,
		Longitude:  lon,
		Address:    address,
		Status:     record.Status,
		UploadedAt: time.Now(),
	})
	if err != nil {
		cmd.PrintErrln("Warning: uploaded, but the local history could not be updated.")
	}
}

func uploadDirectory(app *App, cmd *cobra.Command, dir string, opts operations.BatchOptions, recursive bool) {
	ctx := cmd.Context()

	files, err := operations.FindImages(dir, recursive)
	if err != nil {
		cmd.PrintErrln("Error: failed to scan", dir)
		return
	}
	if len(files) == 0 {
		cmd.Println("No image files found in", dir)
		return
	}

	cmd.Printf("Uploading %d images with %d workers...\n", len(files), opts.Workers)
	results := operations.UploadBatch(ctx, app.API, app.Uploads, files, opts)

	var uploaded, skipped, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			cmd.PrintErrln("Failed:", r.File)
		case r.Skipped:
			skipped++
		default:
			uploaded++
		}
	}
	cmd.Printf("Done: %d uploaded, %d skipped, %d failed.\n", uploaded, skipped, failed)
}
