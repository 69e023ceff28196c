package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/download"
	"github.com/yildizm/snapgrid/internal/layout"
	"github.com/yildizm/snapgrid/internal/logger"
	"github.com/yildizm/snapgrid/internal/ui"
)

var (
	browseLayout  string
	browseTheme   string
	browsePerPage int
	watchConfig   bool
)

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&browseLayout, "layout", "l", "", "gallery layout (grid, masonry)")
	cmd.Flags().StringVarP(&browseTheme, "theme", "t", "", "color theme (default, high-contrast, minimal)")
	cmd.Flags().IntVarP(&browsePerPage, "per-page", "n", 0, "photos per search (default follows the layout)")
	cmd.Flags().BoolVarP(&watchConfig, "watch-config", "w", false, "reload theme and layout when the config file changes")
}

// applyBrowseFlags copies explicitly set browse flags onto cfg
func applyBrowseFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("layout") {
		if _, err := layout.Parse(browseLayout); err != nil {
			return err
		}
		cfg.UI.Layout = browseLayout
	}
	if cmd.Flags().Changed("theme") {
		if _, ok := ui.ThemeByName(browseTheme); !ok {
			return fmt.Errorf("unknown theme %q (available: %v)", browseTheme, ui.GetAvailableThemes())
		}
		cfg.UI.Theme = browseTheme
	}
	if cmd.Flags().Changed("per-page") {
		cfg.Search.PerPage = browsePerPage
	}
	return cfg.Validate()
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	if err := applyBrowseFlags(cmd, cfg); err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file
	log := newLogger("ui")
	sink := openLogSink(log, cfg.LogFile())
	defer func() { _ = sink.Close() }()

	saver := download.New(client, download.Options{
		Dir:       cfg.DownloadDir(),
		Filename:  cfg.Download.Filename,
		Overwrite: cfg.Download.Overwrite,
	})

	opts := ui.Options{
		Gallery: cfg.GalleryOptions(),
		Layout:  cfg.LayoutKind(),
		PerPage: cfg.PageSize(),
		Theme:   cfg.UI.Theme,
		Color:   useColor(cfg),
		Logger:  log,
	}

	if watchConfig {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		updates, err := startWatcher(ctx, cmd, log.WithComponent("watch"))
		if err != nil {
			return err
		}
		opts.Updates = updates
	}

	log.InfoWithFields("browser starting", []logger.Field{
		logger.F("layout", opts.Layout), logger.F("per_page", opts.PerPage), logger.F("theme", opts.Theme),
	})
	return ui.Run(client, saver, opts)
}

// startWatcher watches the config search paths and forwards every reload with
// the command line overrides re-applied
func startWatcher(ctx context.Context, cmd *cobra.Command, log *logger.Logger) (<-chan config.Update, error) {
	w, err := config.NewWatcher(config.NewLoader(), cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to watch config: %w", err)
	}

	out := make(chan config.Update)
	go w.Run(ctx)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()
		for u := range w.Updates() {
			u = reapplyFlags(cmd, u)
			if u.Err != nil {
				log.WarnWithFields("reload failed", []logger.Field{logger.Error(u.Err)})
			} else {
				log.Info("config reloaded")
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// reapplyFlags keeps flags given at startup ahead of a reloaded file
func reapplyFlags(cmd *cobra.Command, u config.Update) config.Update {
	if u.Err != nil || u.Config == nil {
		return u
	}
	if noColor {
		u.Config.Output.ColorMode = "never"
	}
	if err := applyBrowseFlags(cmd, u.Config); err != nil {
		return config.Update{Err: err}
	}
	return u
}
