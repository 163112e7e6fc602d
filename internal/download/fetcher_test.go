package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fendlconv/internal/services"
)

func TestFetchSavesBody(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("archive-bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "fendl31d-neutron-ace.zip")
	fetcher := &Fetcher{}
	if err := fetcher.Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "archive-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
	if gotAgent == "" || gotAgent == "Go-http-client/1.1" {
		t.Fatalf("fetcher must present a browser user agent, got %q", gotAgent)
	}

	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("no partial files may remain, got %d entries", len(entries))
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "missing.zip")
	err := (&Fetcher{}).Fetch(context.Background(), server.URL, dest)
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		t.Fatal("failed fetch must not create the destination file")
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(nil))
	server.Close()

	err := (&Fetcher{}).Fetch(context.Background(), server.URL, filepath.Join(t.TempDir(), "x.zip"))
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestFetchInsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "tls.zip")

	// Verification enabled: the self-signed certificate must be rejected.
	if err := (&Fetcher{}).Fetch(context.Background(), server.URL, dest); !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected certificate failure, got %v", err)
	}

	if err := (&Fetcher{Insecure: true}).Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("insecure fetch should succeed: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "ok" {
		t.Fatalf("content mismatch: %q", data)
	}
}
