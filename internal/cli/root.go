package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/emoji"
	"github.com/yildizm/snapgrid/internal/logger"
	"github.com/yildizm/snapgrid/internal/ui"
	"github.com/yildizm/snapgrid/internal/unsplash"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
	logFile string

	// set from the loaded config; --verbose always wins
	configVerbose bool
	globalConfig  *config.Config
	userAgent     = unsplash.DefaultUserAgent
)

// NewRootCommand creates the root command. Without a subcommand it starts the browser.
func NewRootCommand(version, commit, date string) *cobra.Command {
	userAgent = fmt.Sprintf("%s/%s", unsplash.DefaultUserAgent, version)

	rootCmd := &cobra.Command{
		Use:   "snapgrid",
		Short: "Terminal photo search gallery",
		Long: `snapgrid searches Unsplash and shows the results as a grid or masonry
gallery in your terminal.

Type in the search box to search (results update after you stop typing),
move between photos with the arrow keys, press enter to open the viewer and
d to download the full-resolution image.

An Unsplash access key is required. Set it with UNSPLASH_ACCESS_KEY or in the
api.access_key field of the config file (see 'snapgrid config init').`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
		RunE: runBrowse,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default from config)")

	addBrowseFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newDownloadCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "snapgrid %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once, honouring --config, and
// applies the global flag overrides
func GetGlobalConfig() (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		cfg.Logging.Verbose = true
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	configVerbose = cfg.Logging.Verbose

	log := newLogger("config")
	for _, src := range loader.Sources() {
		log.Debug("loaded %s", src)
	}
	for _, w := range loader.Warnings() {
		log.Warn("%s", w)
	}

	globalConfig = cfg
	return cfg, nil
}

// newClient builds the photo API client from cfg
func newClient(cfg *config.Config) (*unsplash.Client, error) {
	client, err := unsplash.New(cfg.ClientConfig(userAgent))
	if err != nil {
		return nil, fmt.Errorf("cannot create photo client: %w", err)
	}
	return client, nil
}

// newLogger creates a component logger writing to stderr
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// useColor resolves output.color_mode against --no-color and NO_COLOR
func useColor(cfg *config.Config) bool {
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !noColor && !ui.IsColorDisabled()
	}
}

// openLogSink points log at the configured file. The returned closer is
// never nil.
func openLogSink(log *logger.Logger, path string) io.Closer {
	if path == "" {
		log.SetOutput(nil)
		return nopCloser{}
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s could not open log file: %v\n", emoji.GetEmoji("warning"), err)
		log.SetOutput(nil)
		return nopCloser{}
	}
	log.SetOutput(f)
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Global helpers
func isVerbose() bool {
	return verbose || configVerbose
}
