package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/download"
	"github.com/yildizm/snapgrid/internal/formatter"
	"github.com/yildizm/snapgrid/internal/gallery"
	"github.com/yildizm/snapgrid/internal/layout"
	"github.com/yildizm/snapgrid/internal/unsplash"
)

// runCLI executes the root command with args and returns what it printed
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalConfig = nil
	configVerbose = false
	t.Cleanup(func() { globalConfig = nil })

	cmd := NewRootCommand("test", "abc123", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// isolateEnv keeps host config and credentials out of the test
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.AccessKeyEnv, "")
	t.Setenv("SNAPGRID_API_ACCESS_KEY", "")
	t.Setenv("SNAPGRID_API_BASE_URL", "")
	t.Setenv("NO_COLOR", "")
	t.Chdir(dir)
	return dir
}

// photoServer serves /search/photos with n photos whose full URLs point back at it
func photoServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/search/photos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client_id") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":["OAuth error: The access token is invalid"]}`))
			return
		}
		term := r.URL.Query().Get("query")
		results := make([]map[string]any, n)
		for i := range results {
			results[i] = map[string]any{
				"id":              fmt.Sprintf("%s-%d", term, i),
				"alt_description": fmt.Sprintf("%s photo %d", term, i),
				"urls": map[string]string{
					"small":   server.URL + "/img/small",
					"regular": server.URL + "/img/regular",
					"full":    fmt.Sprintf("%s/img/full/%d", server.URL, i),
				},
				"user": map[string]string{"name": fmt.Sprintf("user-%d", i)},
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"total": n * 10, "total_pages": 10, "results": results})
	})
	mux.HandleFunc("/img/full/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg:" + filepath.Base(r.URL.Path)))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "snapgrid.yaml")
	content := fmt.Sprintf(`api:
  access_key: "test-key"
  base_url: %q
  requests_per_hour: 0
download:
  dir: %q
`, baseURL, filepath.Join(dir, "downloads"))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "snapgrid test (abc123) built on today") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestSearchCommandJSON(t *testing.T) {
	dir := isolateEnv(t)
	server := photoServer(t, 3)
	cfgPath := writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "search", "mountains", "-o", "json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var result formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if result.Term != "mountains" || result.IsDefault {
		t.Errorf("Expected user search for mountains, got %+v", result)
	}
	if result.Count != 3 || result.Total != 30 {
		t.Errorf("Expected 3 of 30 photos, got %d of %d", result.Count, result.Total)
	}
	if result.Photos[2].ID != "mountains-2" || result.Photos[2].Location != gallery.UnknownLocation {
		t.Errorf("Unexpected photo: %+v", result.Photos[2])
	}
}

func TestSearchCommandFallback(t *testing.T) {
	dir := isolateEnv(t)
	server := photoServer(t, 1)
	cfgPath := writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "search", "-o", "json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var result formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if result.Term != gallery.DefaultQuery || !result.IsDefault {
		t.Errorf("Expected fallback search, got term=%q default=%v", result.Term, result.IsDefault)
	}
}

func TestSearchCommandRequiresAccessKey(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "search", "cats")
	if err == nil {
		t.Fatal("Expected an error without an access key")
	}
	if !strings.Contains(err.Error(), config.AccessKeyEnv) {
		t.Errorf("Expected the error to mention %s, got %v", config.AccessKeyEnv, err)
	}
}

func TestSearchCommandErrorHints(t *testing.T) {
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors":["Rate Limit Exceeded"]}`))
	}))
	t.Cleanup(limited.Close)

	tests := []struct {
		name     string
		baseURL  string
		key      string
		wantHint string
	}{
		{"rejected key", photoServer(t, 1).URL, "wrong-key", config.AccessKeyEnv},
		{"rate limited", limited.URL, "test-key", "api.requests_per_hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateEnv(t)
			cfgPath := writeConfig(t, dir, tt.baseURL)
			content, err := os.ReadFile(cfgPath)
			if err != nil {
				t.Fatalf("Failed to read config: %v", err)
			}
			content = bytes.Replace(content, []byte("test-key"), []byte(tt.key), 1)
			if err := os.WriteFile(cfgPath, content, 0o600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err = runCLI(t, "search", "cats", "--config", cfgPath)
			if err == nil {
				t.Fatal("Expected the search to fail")
			}
			if !strings.Contains(err.Error(), tt.wantHint) {
				t.Errorf("Expected error to mention %s, got %v", tt.wantHint, err)
			}
		})
	}
}

func TestSearchHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", unsplash.NewStatusError(unsplash.ErrTypeAuthentication, http.StatusUnauthorized, "bad key"), config.AccessKeyEnv},
		{"too many requests", unsplash.NewStatusError(unsplash.ErrTypeRateLimit, http.StatusTooManyRequests, "slow down"), "api.requests_per_hour"},
		{"local quota", unsplash.NewError(unsplash.ErrTypeRateLimit, "request quota exhausted"), "api.requests_per_hour"},
		{"server error", unsplash.NewStatusError(unsplash.ErrTypeAPI, http.StatusInternalServerError, "boom"), ""},
		{"plain error", fmt.Errorf("dial failed"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchHint(fmt.Errorf("wrapped: %w", tt.err))
			if tt.want == "" && got != "" {
				t.Errorf("Expected no hint, got %q", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected hint containing %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSearchCommandUnknownFormat(t *testing.T) {
	dir := isolateEnv(t)
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")
	if _, err := runCLI(t, "search", "cats", "-o", "xml", "--config", cfgPath); err == nil {
		t.Error("Expected an error for an unknown output format")
	}
}

func TestDownloadCommand(t *testing.T) {
	dir := isolateEnv(t)
	server := photoServer(t, 4)
	cfgPath := writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "download", "lakes", "--index", "2", "--config", cfgPath)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	want := filepath.Join(dir, "downloads", download.DefaultFilename)
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected %s to be written: %v", want, err)
	}
	if string(data) != "jpeg:2" {
		t.Errorf("Expected photo 2 to be downloaded, got %q", data)
	}
	if !strings.Contains(out, want) || !strings.Contains(out, "user-2") {
		t.Errorf("Unexpected download output: %s", out)
	}
}

func TestDownloadCommandIndexOutOfRange(t *testing.T) {
	dir := isolateEnv(t)
	server := photoServer(t, 2)
	cfgPath := writeConfig(t, dir, server.URL)

	_, err := runCLI(t, "download", "lakes", "--index", "5", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Expected out of range error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "cfg", "snapgrid.yaml")

	if _, err := runCLI(t, "config", "init", "--output", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := runCLI(t, "config", "init", "--output", path); err == nil {
		t.Error("Expected init to refuse overwriting without --force")
	}
	if _, err := runCLI(t, "config", "init", "--output", path, "--force", "--minimal"); err != nil {
		t.Errorf("Expected --force to overwrite: %v", err)
	}

	out, err := runCLI(t, "config", "validate", "--config", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, "API client not ready") {
		t.Errorf("Unexpected validate output: %s", out)
	}
}

func TestConfigShowMasksAccessKey(t *testing.T) {
	dir := isolateEnv(t)
	cfgPath := writeConfig(t, dir, "https://api.unsplash.com")

	out, err := runCLI(t, "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(out, "test-key") {
		t.Error("Expected access key to be masked")
	}
	if !strings.Contains(out, "****-key") {
		t.Errorf("Expected masked key in output: %s", out)
	}
}

func TestSearchTerm(t *testing.T) {
	cfg := config.DefaultConfig()
	tests := []struct {
		args        []string
		wantTerm    string
		wantDefault bool
	}{
		{nil, gallery.DefaultQuery, true},
		{[]string{"  "}, gallery.DefaultQuery, true},
		{[]string{"city", "lights"}, "city lights", false},
		{[]string{" forest "}, "forest", false},
	}
	for _, tt := range tests {
		term, isDefault := searchTerm(cfg, tt.args)
		if term != tt.wantTerm || isDefault != tt.wantDefault {
			t.Errorf("searchTerm(%q) = %q, %v; want %q, %v", tt.args, term, isDefault, tt.wantTerm, tt.wantDefault)
		}
	}
}

func TestApplyBrowseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(*config.Config) bool
	}{
		{"no flags", nil, false, func(c *config.Config) bool { return c.LayoutKind() == layout.Grid }},
		{"masonry", []string{"--layout", "masonry"}, false, func(c *config.Config) bool {
			return c.LayoutKind() == layout.Masonry && c.PageSize() == layout.MasonryPageSize
		}},
		{"per page", []string{"--per-page", "12"}, false, func(c *config.Config) bool { return c.PageSize() == 12 }},
		{"theme", []string{"--theme", "minimal"}, false, func(c *config.Config) bool { return c.UI.Theme == "minimal" }},
		{"bad layout", []string{"--layout", "carousel"}, true, nil},
		{"bad theme", []string{"--theme", "neon"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addBrowseFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			cfg := config.DefaultConfig()
			err := applyBrowseFlags(cmd, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyBrowseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Unexpected config after %v: %+v", tt.args, cfg.UI)
			}
		})
	}
}

func TestReapplyFlagsOnReload(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		file    func(*config.Config)
		wantErr bool
		check   func(*config.Config) bool
	}{
		{"file wins without flags", nil, func(c *config.Config) { c.UI.Layout = "masonry" }, false,
			func(c *config.Config) bool { return c.LayoutKind() == layout.Masonry }},
		{"layout flag beats file", []string{"--layout", "grid"}, func(c *config.Config) { c.UI.Layout = "masonry" }, false,
			func(c *config.Config) bool { return c.LayoutKind() == layout.Grid }},
		{"theme flag beats file", []string{"--theme", "minimal"}, func(c *config.Config) { c.UI.Theme = "high-contrast" }, false,
			func(c *config.Config) bool { return c.UI.Theme == "minimal" }},
		{"per page flag beats file", []string{"--per-page", "12"}, func(c *config.Config) { c.Search.PerPage = 30 }, false,
			func(c *config.Config) bool { return c.PageSize() == 12 }},
		{"other file changes survive", []string{"--layout", "grid"}, func(c *config.Config) { c.UI.Theme = "minimal" }, false,
			func(c *config.Config) bool { return c.UI.Theme == "minimal" && c.LayoutKind() == layout.Grid }},
		{"bad flag fails the reload", []string{"--layout", "carousel"}, func(c *config.Config) {}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addBrowseFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			cfg := config.DefaultConfig()
			tt.file(cfg)
			u := reapplyFlags(cmd, config.Update{Config: cfg})
			if (u.Err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, u.Err)
			}
			if tt.check != nil && !tt.check(u.Config) {
				t.Errorf("Unexpected config after reload with %v: %+v", tt.args, u.Config.UI)
			}
		})
	}
}

func TestReapplyFlagsKeepsReloadError(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addBrowseFlags(cmd)
	if err := cmd.ParseFlags([]string{"--layout", "masonry"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	reloadErr := fmt.Errorf("broken yaml")
	u := reapplyFlags(cmd, config.Update{Err: reloadErr})
	if u.Err != reloadErr || u.Config != nil {
		t.Errorf("Expected the reload error to pass through, got %+v", u)
	}
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", true},
	}
	for _, tt := range tests {
		cfg := config.DefaultConfig()
		cfg.Output.ColorMode = tt.mode
		if got := useColor(cfg); got != tt.want {
			t.Errorf("useColor(%s) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "****",
		"abcdefgh12": "****gh12",
	}
	for in, want := range tests {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPickPhoto(t *testing.T) {
	photos := []gallery.Photo{{ID: "a"}, {ID: "b"}}
	if p, err := pickPhoto(photos, 1); err != nil || p.ID != "b" {
		t.Errorf("Expected b, got %+v (%v)", p, err)
	}
	if _, err := pickPhoto(photos, 2); err == nil {
		t.Error("Expected out of range error")
	}
	if _, err := pickPhoto(nil, 0); err == nil {
		t.Error("Expected error for empty results")
	}
}
