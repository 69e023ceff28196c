// Package download saves full-resolution photos to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/snapgrid/internal/gallery"
	"github.com/yildizm/snapgrid/internal/unsplash"
)

// DefaultFilename is used for every photo regardless of its real format
const DefaultFilename = "downloaded-image.jpg"

// maxSuffix bounds the " (n)" search for a free filename
const maxSuffix = 1000

// Fetcher opens binary content by URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Options configures a Downloader
type Options struct {
	Dir       string
	Filename  string
	Overwrite bool
}

// Downloader writes photos into a directory
type Downloader struct {
	fetcher   Fetcher
	dir       string
	filename  string
	overwrite bool
}

// New creates a downloader. Empty options fall back to the working
// directory and DefaultFilename.
func New(fetcher Fetcher, opts Options) *Downloader {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Filename == "" {
		opts.Filename = DefaultFilename
	}
	return &Downloader{
		fetcher:   fetcher,
		dir:       opts.Dir,
		filename:  filepath.Base(opts.Filename),
		overwrite: opts.Overwrite,
	}
}

// Download saves the full rendition of photo and returns the written path.
// Data is streamed into a temp file in the target directory and renamed into
// place, so a failed transfer never leaves a partial image behind.
func (d *Downloader) Download(ctx context.Context, photo gallery.Photo) (string, error) {
	if strings.TrimSpace(photo.URLs.Full) == "" {
		return "", unsplash.NewValidationError(fmt.Sprintf("photo %q has no full-size URL", photo.ID))
	}

	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	body, err := d.fetcher.Fetch(ctx, photo.URLs.Full)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	tmp, err := os.CreateTemp(d.dir, ".snapgrid-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body}); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	target, err := d.target()
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	committed = true

	return target, nil
}

// target returns the destination path, picking "name (n).ext" when the
// plain name is taken and overwriting is off
func (d *Downloader) target() (string, error) {
	path := filepath.Join(d.dir, d.filename)
	if d.overwrite || !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(d.filename)
	stem := strings.TrimSuffix(d.filename, ext)
	for n := 1; n <= maxSuffix; n++ {
		candidate := filepath.Join(d.dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free filename for %s in %s", d.filename, d.dir)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ctxReader stops a copy once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
