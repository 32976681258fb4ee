package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// UploadRequest describes one image upload.
type UploadRequest struct {
	FilePath  string
	Latitude  float64
	Longitude float64
	Address   string
	SHA256    string

	// ShowProgress draws a progress bar on stderr while the body streams.
	// Batch uploads keep it off and report through the pool instead.
	ShowProgress bool
}

// UploadImage sends one geotagged image as a multipart form and returns the
// server's record for it.
func (c *Client) UploadImage(ctx context.Context, req UploadRequest) (*ImageRecord, error) {
	log.Info().Str("file", req.FilePath).Msg("Uploading image")

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"latitude":  strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(req.Longitude, 'f', -1, 64),
		"address":   req.Address,
		"sha256":    req.SHA256,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("image", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var body io.Reader = &buf
	if req.ShowProgress {
		bar := progressbar.NewOptions64(
			int64(buf.Len()),
			progressbar.OptionSetDescription(fmt.Sprintf("Uploading %s", filepath.Base(req.FilePath))),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetPredictTime(false),
		)
		reader := progressbar.NewReader(&buf, bar)
		body = &reader
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.cfg.UploadPath), body)
	if err != nil {
		return nil, err
	}
	// Multipart body: the writer's boundary-bearing content type, not JSON.
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.sendRequest(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	raw, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	var record ImageRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Error().Err(err).Str("body_preview", string(raw[:min(len(raw), 200)])).Msg("Failed to parse upload response")
		return nil, err
	}
	log.Info().Str("id", record.ID).Msg("Image uploaded successfully")
	return &record, nil
}

// ListImages returns the caller's uploaded images.
func (c *Client) ListImages(ctx context.Context) ([]ImageRecord, error) {
	var out []ImageRecord
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.ImagesPath, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return out, nil
}

// DeleteImage removes an uploaded image by its server-side ID.
func (c *Client) DeleteImage(ctx context.Context, id string) error {
	path := c.cfg.ImagesPath + id + "/"
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", id, err)
	}
	return nil
}

// ReprocessImage asks the backend to run detection on an image again.
func (c *Client) ReprocessImage(ctx context.Context, id string) (*ImageRecord, error) {
	path := c.cfg.ImagesPath + id + "/process/"
	var out ImageRecord
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to reprocess image %s: %w", id, err)
	}
	return &out, nil
}
