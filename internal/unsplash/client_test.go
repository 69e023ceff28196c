package unsplash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testAccessKey = "test-access-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&Config{
		BaseURL:   server.URL,
		AccessKey: testAccessKey,
		Timeout:   5 * time.Second,
		UserAgent: DefaultUserAgent,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestClient_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: true, // no access key
		},
		{
			name: "valid config",
			config: &Config{
				BaseURL:   DefaultBaseURL,
				AccessKey: testAccessKey,
				Timeout:   DefaultTimeout,
			},
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				BaseURL:   "http://[::1]:namedport",
				AccessKey: testAccessKey,
				Timeout:   DefaultTimeout,
			},
			wantErr: true,
		},
		{
			name: "unsupported scheme",
			config: &Config{
				BaseURL:   "ftp://api.unsplash.com",
				AccessKey: testAccessKey,
				Timeout:   DefaultTimeout,
			},
			wantErr: true,
		},
		{
			name: "zero timeout",
			config: &Config{
				BaseURL:   DefaultBaseURL,
				AccessKey: testAccessKey,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !IsConfigurationError(err) {
				t.Errorf("Expected configuration error, got %v", err)
			}
			if !tt.wantErr && client == nil {
				t.Error("New() returned nil client without error")
			}
		})
	}
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/search/photos" {
			t.Errorf("Expected /search/photos, got %s", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("query") != "red fox" {
			t.Errorf("Expected query 'red fox', got %q", q.Get("query"))
		}
		if q.Get("client_id") != testAccessKey {
			t.Errorf("Expected client_id %s, got %s", testAccessKey, q.Get("client_id"))
		}
		if q.Get("per_page") != "8" {
			t.Errorf("Expected per_page 8, got %s", q.Get("per_page"))
		}
		if r.Header.Get("Accept-Version") != "v1" {
			t.Errorf("Expected Accept-Version v1, got %s", r.Header.Get("Accept-Version"))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"total": 2,
			"total_pages": 1,
			"results": [
				{"id": "a", "width": 4000, "height": 6000, "alt_description": "a fox",
				 "urls": {"small": "s-a", "regular": "r-a", "full": "f-a"},
				 "user": {"name": "Ada", "location": "Oslo"}},
				{"id": "b", "alt_description": null,
				 "urls": {"small": "s-b", "regular": "r-b", "full": "f-b"},
				 "user": {"name": "Bo", "location": null}}
			]
		}`)
	})

	photos, err := client.Search(context.Background(), "  red fox ", 8)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("Expected 2 photos, got %d", len(photos))
	}
	if photos[0].ID != "a" || photos[1].ID != "b" {
		t.Errorf("Expected API order a,b, got %s,%s", photos[0].ID, photos[1].ID)
	}
	if photos[0].URLs.Full != "f-a" || photos[0].User.Location != "Oslo" {
		t.Errorf("Unexpected first photo: %+v", photos[0])
	}
	if photos[1].User.DisplayLocation() != "Unknown" {
		t.Errorf("Expected Unknown location, got %q", photos[1].User.DisplayLocation())
	}
}

func TestClient_SearchPerPageBounds(t *testing.T) {
	tests := []struct {
		perPage int
		want    string
	}{
		{0, "8"},
		{-3, "8"},
		{20, "20"},
		{100, "30"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.perPage), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("per_page"); got != tt.want {
					t.Errorf("Expected per_page %s, got %s", tt.want, got)
				}
				fmt.Fprint(w, `{"results": []}`)
			})
			photos, err := client.Search(context.Background(), "cats", tt.perPage)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if photos == nil || len(photos) != 0 {
				t.Errorf("Expected empty non-nil result, got %v", photos)
			}
		})
	}
}

func TestClient_SearchEmptyTerm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected no request for a blank term")
	})
	_, err := client.Search(context.Background(), "   ", 8)
	if !IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		header      map[string]string
		body        string
		wantType    ErrorType
		wantMessage string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"errors": ["OAuth error: The access token is invalid"]}`,
			wantType:    ErrTypeAuthentication,
			wantMessage: "OAuth error: The access token is invalid",
		},
		{
			name:        "quota exhausted",
			status:      http.StatusForbidden,
			header:      map[string]string{"X-Ratelimit-Remaining": "0"},
			body:        `{"errors": ["Rate Limit Exceeded"]}`,
			wantType:    ErrTypeRateLimit,
			wantMessage: "Rate Limit Exceeded",
		},
		{
			name:     "too many requests",
			status:   http.StatusTooManyRequests,
			body:     `Rate Limit Exceeded`,
			wantType: ErrTypeRateLimit,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"errors": ["Couldn't find Photo"]}`,
			wantType:    ErrTypeNotFound,
			wantMessage: "Couldn't find Photo",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantType: ErrTypeAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.Search(context.Background(), "cats", 8)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, apiErr.Type)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, apiErr.StatusCode)
			}
			if tt.wantMessage != "" && apiErr.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	})
	_, err := client.Search(context.Background(), "cats", 8)
	if !errors.Is(err, &APIError{Type: ErrTypeDecode}) {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := New(&Config{BaseURL: baseURL, AccessKey: testAccessKey, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.Search(context.Background(), "cats", 8)
	if !errors.Is(err, &APIError{Type: ErrTypeNetwork}) {
		t.Errorf("Expected network error, got %v", err)
	}
}

func TestClient_RateLimiter(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	client, err := New(&Config{
		BaseURL:         server.URL,
		AccessKey:       testAccessKey,
		Timeout:         time.Second,
		RequestsPerHour: 2,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := client.Search(context.Background(), "cats", 8); err != nil {
			t.Fatalf("Search %d error = %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, "cats", 8)
	if !IsRateLimitError(err) {
		t.Errorf("Expected rate limit error once the burst is spent, got %v", err)
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("Expected 2 requests to reach the server, got %d", n)
	}
}

func TestClient_Fetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			fmt.Fprint(w, "JPEGDATA")
		default:
			http.NotFound(w, r)
		}
	})

	body, err := client.Fetch(context.Background(), client.baseURL.JoinPath("/photo.jpg").String())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "JPEGDATA" {
		t.Errorf("Expected JPEGDATA, got %q", data)
	}

	if _, err := client.Fetch(context.Background(), client.baseURL.JoinPath("/missing.jpg").String()); !IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
	if _, err := client.Fetch(context.Background(), ""); !IsValidationError(err) {
		t.Errorf("Expected validation error for empty URL, got %v", err)
	}
}

func TestClient_FetchOutlastsAPITimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("Expected a flushing response writer")
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		for i := 0; i < 6; i++ {
			fmt.Fprintf(w, "chunk%d;", i)
			flusher.Flush()
			time.Sleep(50 * time.Millisecond)
		}
	}))
	t.Cleanup(server.Close)

	client, err := New(&Config{
		BaseURL:   server.URL,
		AccessKey: testAccessKey,
		Timeout:   100 * time.Millisecond,
		UserAgent: DefaultUserAgent,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	body, err := client.Fetch(context.Background(), server.URL+"/full.jpg")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer func() { _ = body.Close() }()

	// The body takes ~300ms, three times the API timeout
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("Expected slow body to stream to the end, got %v", err)
	}
	if want := "chunk0;chunk1;chunk2;chunk3;chunk4;chunk5;"; string(data) != want {
		t.Errorf("Expected %q, got %q", want, data)
	}
}

func TestClient_FetchHeaderTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := New(&Config{
		BaseURL:   server.URL,
		AccessKey: testAccessKey,
		Timeout:   50 * time.Millisecond,
		UserAgent: DefaultUserAgent,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := client.Fetch(context.Background(), server.URL+"/stalled.jpg"); err == nil {
		t.Error("Expected a server that never answers to time out")
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		Type:       ErrTypeAuthentication,
		Message:    "invalid key",
		StatusCode: 401,
		Cause:      io.EOF,
	}
	want := "unsplash: type=authentication: status=401: invalid key: cause=EOF"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, io.EOF) {
		t.Error("Expected Unwrap to expose the cause")
	}
}
