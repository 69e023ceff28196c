package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/formatter"
	"github.com/yildizm/snapgrid/internal/logger"
	"github.com/yildizm/snapgrid/internal/unsplash"
)

var (
	searchOutput  string
	searchPerPage int
	searchOutFile string
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search photos and print the results",
		Long: `Run a single photo search and print the results.

With no term the default query is searched, exactly as the browser does on
startup.

Examples:
  snapgrid search mountains
  snapgrid search "city lights" -o json
  snapgrid search --per-page 20 -o markdown > photos.md`,
		RunE: runSearch,
	}

	cmd.Flags().StringVarP(&searchOutput, "output", "o", "", "output format (text, json, markdown, csv)")
	cmd.Flags().IntVarP(&searchPerPage, "per-page", "n", 0, "number of photos to fetch")
	cmd.Flags().StringVar(&searchOutFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

// searchTerm joins args into the query. An empty query falls back to the
// configured default and is reported as such.
func searchTerm(cfg *config.Config, args []string) (term string, isDefault bool) {
	term = strings.TrimSpace(strings.Join(args, " "))
	if term == "" {
		return cfg.Search.DefaultQuery, true
	}
	return term, false
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	format := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("output") {
		format = searchOutput
	}
	f, err := formatter.New(format, useColor(cfg))
	if err != nil {
		return err
	}

	perPage := cfg.PageSize()
	if cmd.Flags().Changed("per-page") {
		perPage = searchPerPage
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	term, isDefault := searchTerm(cfg, args)
	report, err := fetchReport(cmd.Context(), client, term, isDefault, perPage, cfg.API.Timeout)
	if err != nil {
		return err
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	return writeOutput(cmd, output, searchOutFile)
}

// photoSearcher is the part of the client the one-shot commands need
type photoSearcher interface {
	SearchPage(ctx context.Context, term string, perPage int) (*unsplash.SearchResult, error)
}

func fetchReport(ctx context.Context, client photoSearcher, term string, isDefault bool, perPage int, timeout time.Duration) (*formatter.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := newLogger("search")
	start := time.Now()
	result, err := client.SearchPage(ctx, term, perPage)
	if err != nil {
		log.ErrorWithFields("search failed", []logger.Field{logger.F("term", term), logger.Error(err)})
		if hint := searchHint(err); hint != "" {
			return nil, fmt.Errorf("search failed: %w (%s)", err, hint)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}
	log.InfoWithFields("search complete", []logger.Field{
		logger.F("term", term), logger.Count(len(result.Results)), logger.Duration(time.Since(start)),
	})

	return &formatter.Report{
		Term:        term,
		IsDefault:   isDefault,
		Total:       result.Total,
		Photos:      result.Results,
		GeneratedAt: time.Now(),
	}, nil
}

// searchHint names the setting behind errors the user can fix themselves
func searchHint(err error) string {
	switch {
	case unsplash.IsAuthenticationError(err):
		return fmt.Sprintf("check api.access_key or %s", config.AccessKeyEnv)
	case unsplash.IsRateLimitError(err):
		return "quota exhausted, wait or lower api.requests_per_hour"
	default:
		return ""
	}
}

// writeOutput writes output to a file or the command's stdout
func writeOutput(cmd *cobra.Command, output []byte, path string) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if err := os.WriteFile(path, output, 0o600); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to: %s\n", path)
	}
	return nil
}
