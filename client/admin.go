package client

import (
	"context"
	"fmt"
	"net/http"
)

// Analytics fetches the aggregated detection summary. The backend enforces
// the admin requirement; the CLI additionally gates on the session role to
// give a friendlier message than a 403.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.AnalyticsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch analytics: %w", err)
	}
	return &out, nil
}

// Reports fetches the aggregated area reports for the government view.
func (c *Client) Reports(ctx context.Context) ([]Report, error) {
	var out []Report
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.ReportsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return out, nil
}
