package physics

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"fendlconv/internal/services"
)

var commandContext = exec.CommandContext

// Tool runs the external converter binary that parses evaluation files and
// serializes HDF5 containers.
type Tool struct {
	binary string
}

// ToolOption configures the converter tool.
type ToolOption func(*Tool)

// WithBinary overrides the default converter binary name.
func WithBinary(binary string) ToolOption {
	return func(t *Tool) {
		if binary != "" {
			t.binary = binary
		}
	}
}

// NewTool constructs a converter client using defaults.
func NewTool(opts ...ToolOption) *Tool {
	tool := &Tool{binary: "openmc-nd-convert"}
	for _, opt := range opts {
		opt(tool)
	}
	return tool
}

// ConvertACE builds an incident-neutron container from an ACE table.
func (t *Tool) ConvertACE(ctx context.Context, inputPath, outputPath string, libver LibVer) error {
	return t.run(ctx, "ace", inputPath, outputPath, libver)
}

// ConvertENDF builds an incident-photon container from an ENDF evaluation.
func (t *Tool) ConvertENDF(ctx context.Context, inputPath, outputPath string, libver LibVer) error {
	return t.run(ctx, "endf", inputPath, outputPath, libver)
}

func (t *Tool) run(ctx context.Context, kind, inputPath, outputPath string, libver LibVer) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}
	if !libver.Valid() {
		return services.Wrap(services.ErrConfiguration, "convert", "libver",
			string(libver), nil)
	}

	args := []string{kind, "--libver", string(libver), "--output", outputPath, inputPath}
	cmd := commandContext(ctx, t.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if len(detail) > 512 {
			detail = detail[len(detail)-512:]
		}
		return services.Wrap(services.ErrExternalTool, "convert", t.binary, detail, err)
	}
	return nil
}

var _ Converter = (*Tool)(nil)
