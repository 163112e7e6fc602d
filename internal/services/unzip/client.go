package unzip

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"fendlconv/internal/services"
)

var commandContext = exec.CommandContext

// Client defines archive extraction behaviour.
type Client interface {
	Extract(ctx context.Context, archivePath, outputDir string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the unzip command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "unzip"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Extract unpacks archivePath into outputDir, overwriting existing files.
func (c *CLI) Extract(ctx context.Context, archivePath, outputDir string) error {
	if archivePath == "" {
		return errors.New("archive path required")
	}
	if outputDir == "" {
		return errors.New("output directory required")
	}

	cmd := commandContext(ctx, c.binary, "-o", archivePath, "-d", outputDir) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if len(detail) > 512 {
			detail = detail[len(detail)-512:]
		}
		return services.Wrap(services.ErrExtraction, "extract", "unzip", detail, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
