// Package postgrest implements the permit data source against a hosted
// PostgREST-style endpoint (Supabase and compatible services). The service
// exposes the permits table as a JSON array; one GET retrieves the full
// dataset.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/pkg/errors"
)

// DefaultTimeout bounds the one-shot fetch when the caller's context carries
// no earlier deadline.
const DefaultTimeout = 30 * time.Second

// Config carries the connectivity parameters for the hosted source.
type Config struct {
	// Endpoint is the service base URL, e.g. "https://xyzcompany.supabase.co".
	Endpoint string `mapstructure:"endpoint"`

	// APIKey is the anon/service key sent as both the apikey header and the
	// bearer token, per the Supabase convention.
	APIKey string `mapstructure:"api_key"`

	// Table is the permits table name. Defaults to "permits".
	Table string `mapstructure:"table"`

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Configured reports whether both required connectivity values are present.
func (c Config) Configured() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

// Client fetches permit rows from the hosted endpoint. It implements
// permit.Source.
type Client struct {
	cfg  Config
	http *http.Client
	log  logging.Logger
}

// NewClient constructs a Client. The caller is expected to have checked
// Configured; an unconfigured Client still behaves correctly, failing with
// CodeSourceUnconfigured on fetch.
func NewClient(cfg Config, log logging.Logger) *Client {
	if cfg.Table == "" {
		cfg.Table = "permits"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.Named("postgrest"),
	}
}

// FetchAll retrieves every row of the permits table in one request.
func (c *Client) FetchAll(ctx context.Context) ([]permit.RawRecord, error) {
	if !c.cfg.Configured() {
		return nil, errors.New(errors.CodeSourceUnconfigured, "postgrest endpoint or api key missing")
	}

	url := fmt.Sprintf("%s/rest/v1/%s?select=*",
		strings.TrimSuffix(c.cfg.Endpoint, "/"), c.cfg.Table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceUnavailable, "build request")
	}
	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceUnavailable, "fetch permits")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Newf(errors.CodeSourceUnavailable,
			"permit query returned status %d", resp.StatusCode).
			WithDetail(strings.TrimSpace(string(body)))
	}

	// UseNumber keeps row values as json.Number so normalization decides how
	// to coerce them, instead of the decoder forcing float64 everywhere.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var rows []permit.RawRecord
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceBadPayload, "decode permit rows")
	}

	c.log.Debug("fetched permit rows",
		logging.Int("rows", len(rows)),
		logging.Duration("took", time.Since(start)),
	)
	return rows, nil
}
