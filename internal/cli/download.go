package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/snapgrid/internal/download"
	"github.com/yildizm/snapgrid/internal/emoji"
	"github.com/yildizm/snapgrid/internal/gallery"
)

var (
	downloadIndex     int
	downloadDir       string
	downloadOverwrite bool
)

func newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [term]",
		Short: "Search and download one photo",
		Long: `Search for photos and download the full-resolution image of one result.

The result is chosen by its position (starting at 0) in the search results.
The file is written as downloaded-image.jpg unless download.filename says
otherwise; existing files get a " (n)" suffix.

Examples:
  snapgrid download mountains
  snapgrid download mountains --index 3 --dir ~/Pictures`,
		RunE: runDownload,
	}

	cmd.Flags().IntVarP(&downloadIndex, "index", "i", 0, "position of the photo in the results")
	cmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "directory to save into (default from config)")
	cmd.Flags().BoolVar(&downloadOverwrite, "overwrite", false, "replace an existing file")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	if downloadIndex < 0 {
		return fmt.Errorf("invalid index %d", downloadIndex)
	}

	opts := download.Options{
		Dir:       cfg.DownloadDir(),
		Filename:  cfg.Download.Filename,
		Overwrite: cfg.Download.Overwrite,
	}
	if cmd.Flags().Changed("dir") {
		opts.Dir = downloadDir
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite = downloadOverwrite
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	term, isDefault := searchTerm(cfg, args)
	report, err := fetchReport(ctx, client, term, isDefault, max(cfg.PageSize(), downloadIndex+1), cfg.API.Timeout)
	if err != nil {
		return err
	}
	photo, err := pickPhoto(report.Photos, downloadIndex)
	if err != nil {
		return err
	}

	path, err := download.New(client, opts).Download(ctx, photo)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Saved %s\n", emoji.GetEmoji("success"), path)
	fmt.Fprintf(out, "   %s %s  %s %s\n", emoji.GetEmoji("user"), photo.User.Name,
		emoji.GetEmoji("location"), photo.User.DisplayLocation())
	return nil
}

func pickPhoto(photos []gallery.Photo, index int) (gallery.Photo, error) {
	if len(photos) == 0 {
		return gallery.Photo{}, fmt.Errorf("no photos found")
	}
	if index >= len(photos) {
		return gallery.Photo{}, fmt.Errorf("index %d out of range (%d results)", index, len(photos))
	}
	return photos[index], nil
}
