package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/client"
	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/pkg/hasher"
	"github.com/Sanidhya49/binsavvy-cli/pkg/pool"
	"github.com/Sanidhya49/binsavvy-cli/pkg/validation"
	"github.com/rs/zerolog/log"
)

// Uploader is the slice of the API client that batch upload needs.
type Uploader interface {
	UploadImage(ctx context.Context, req client.UploadRequest) (*client.ImageRecord, error)
}

// Result is the outcome of uploading a single file.
type Result struct {
	File     string
	RemoteID string
	Skipped  bool // already uploaded, matched by checksum
	Err      error
}

// BatchOptions carries the shared fields of a directory upload.
type BatchOptions struct {
	Latitude  float64
	Longitude float64
	Address   string
	Workers   int
}

// FindImages walks a directory and returns the image files to upload.
func FindImages(dir string, recursive bool) ([]string, error) {
	var files []string
	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if validation.IsImageFile(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, walkErr
}

// UploadBatch uploads files concurrently, skipping any whose checksum is
// already in the local history, and records each success. One file failing
// does not stop the rest.
func UploadBatch(ctx context.Context, uploader Uploader, history db.UploadRepository, files []string, opts BatchOptions) []Result {
	var (
		mu      sync.Mutex
		results []Result
	)
	record := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	pool.Run(ctx, files, opts.Workers, func(ctx context.Context, file string) error {
		res := uploadOne(ctx, uploader, history, file, opts)
		record(res)
		return res.Err
	})
	return results
}

func uploadOne(ctx context.Context, uploader Uploader, history db.UploadRepository, file string, opts BatchOptions) Result {
	sum, err := hasher.ChecksumFile(file)
	if err != nil {
		return Result{File: file, Err: fmt.Errorf("failed to checksum %s: %w", file, err)}
	}

	if history != nil {
		prior, err := history.GetByHash(ctx, sum)
		if err != nil {
			return Result{File: file, Err: err}
		}
		if prior != nil {
			log.Info().Str("file", file).Str("remote_id", prior.RemoteID).Msg("Skipping already uploaded file")
			return Result{File: file, RemoteID: prior.RemoteID, Skipped: true}
		}
	}

	record, err := uploader.UploadImage(ctx, client.UploadRequest{
		FilePath:  file,
		Latitude:  opts.Latitude,
		Longitude: opts.Longitude,
		Address:   opts.Address,
		SHA256:    sum,
	})
	if err != nil {
		return Result{File: file, Err: fmt.Errorf("failed to upload %s: %w", file, err)}
	}

	if history != nil {
		if err := history.Add(ctx, &db.Upload{
			RemoteID:   record.ID,
			FilePath:   file,
			SHA256:     sum,
			Latitude:   opts.Latitude,
			Longitude:  opts.Longitude,
			Address:    opts.Address,
			Status:     record.Status,
			UploadedAt: time.Now(),
		}); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Uploaded but failed to record history")
		}
	}
	return Result{File: file, RemoteID: record.ID}
}
