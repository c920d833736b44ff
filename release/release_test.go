package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte(`{"tag_name": "48.0.0"}`))
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL}
	tag, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if tag != "48.0.0" {
		t.Fatalf("Latest = %q, want 48.0.0", tag)
	}
}

func TestLatestErrors(t *testing.T) {
	t.Run("missing tag_name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		if _, err := (&Client{BaseURL: srv.URL}).Latest(context.Background()); err == nil {
			t.Fatal("expected error for response without tag_name")
		}
	})

	t.Run("non-OK status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusForbidden)
		}))
		defer srv.Close()

		if _, err := (&Client{BaseURL: srv.URL}).Latest(context.Background()); err == nil {
			t.Fatal("expected error for 403 response")
		}
	})
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{name: "newer release", current: "47.0.0", latest: "48.0.0", want: true},
		{name: "same release", current: "48.0.0", latest: "48.0.0", want: false},
		{name: "older release", current: "48.0.0", latest: "47.0.0", want: false},
		{name: "invalid current counts as outdated", current: "unpinned", latest: "48.0.0", want: true},
		{name: "invalid latest is an error", current: "48.0.0", latest: "not-a-version", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsNewer(tc.current, tc.latest)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("IsNewer error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsNewer = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWriteGitHubOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outputs := []Output{
		{Key: "previous_release", Value: "47.0.0"},
		{Key: "latest_release", Value: "48.0.0"},
		{Key: "updated", Value: "true"},
	}
	if err := WriteGitHubOutput(path, outputs); err != nil {
		t.Fatalf("WriteGitHubOutput error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "existing=1\nprevious_release=47.0.0\nlatest_release=48.0.0\nupdated=true\n"
	if string(data) != want {
		t.Fatalf("output file = %q, want %q", data, want)
	}
}
