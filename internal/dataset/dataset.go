// Package dataset makes sure the trip and zone files are on disk before the
// engine reads them.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jengzang/taxi-dashboard/internal/config"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

// Source is a file and the URL it is fetched from when absent
type Source struct {
	URL  string
	Path string
}

// Provider downloads missing dataset files
type Provider struct {
	client *http.Client
	log    logger.Logger
}

// NewProvider creates a provider. A nil client means http.DefaultClient.
func NewProvider(client *http.Client, log logger.Logger) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{client: client, log: log}
}

// Sources returns the trip and zone sources of cfg
func Sources(cfg config.DatasetConfig) []Source {
	return []Source{
		{URL: cfg.TripURL, Path: cfg.TripPath()},
		{URL: cfg.ZoneURL, Path: cfg.ZonePath()},
	}
}

// Ensure downloads every source whose file does not exist yet. Files already
// present are never re-fetched. A failed download is returned, not retried.
func (p *Provider) Ensure(ctx context.Context, sources ...Source) error {
	for _, src := range sources {
		if _, err := os.Stat(src.Path); err == nil {
			p.log.Debug(ctx, "dataset file present", "path", src.Path)
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat %s: %w", src.Path, err)
		}

		if src.URL == "" {
			return fmt.Errorf("%s is missing and has no download url", src.Path)
		}
		if err := p.download(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

// download fetches src.URL into a temp file next to src.Path and renames it
// into place, so a partial download never looks like a complete file
func (p *Provider) download(ctx context.Context, src Source) error {
	dir := filepath.Dir(src.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	p.log.Info(ctx, "downloading dataset file", "url", src.URL, "path", src.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", src.URL, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status code %d", src.URL, resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(src.Path)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	n, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write %s: %w", src.Path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", src.Path, err)
	}

	if err := os.Rename(tmpFile.Name(), src.Path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", src.Path, err)
	}

	p.log.Info(ctx, "dataset file downloaded", "path", src.Path, "bytes", n)
	return nil
}
