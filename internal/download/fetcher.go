package download

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"fendlconv/internal/logging"
	"fendlconv/internal/services"
)

const defaultTimeout = 10 * time.Minute

// userAgent presents the fetcher as a browser; the IAEA mirrors reject
// default Go client identification.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) fendlconv"

// Fetcher downloads archives to disk.
type Fetcher struct {
	Logger   *slog.Logger
	Insecure bool
	Progress bool
	Timeout  time.Duration

	client *http.Client
}

// Fetch downloads url into destPath. Failures are fatal network errors.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	logger := f.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "download", "build request", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "download", "fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrNetwork, "download", "fetch",
			fmt.Sprintf("%s: unexpected status %d", url, resp.StatusCode), nil)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".part-*")
	if err != nil {
		return fmt.Errorf("create temp download file: %w", err)
	}
	tmpPath := tmp.Name()

	var sink io.Writer = tmp
	if f.Progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(destPath))
		sink = io.MultiWriter(tmp, bar)
	}

	written, err := io.Copy(sink, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return services.Wrap(services.ErrNetwork, "download", "save", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close download file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize download %q: %w", destPath, err)
	}

	logger.Debug("archive downloaded",
		logging.String("url", url),
		logging.String("dest", destPath),
		logging.Int64("bytes", written),
	)
	return nil
}

func (f *Fetcher) httpClient() *http.Client {
	if f.client != nil {
		return f.client
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	f.client = &http.Client{Timeout: timeout, Transport: transport}
	return f.client
}
