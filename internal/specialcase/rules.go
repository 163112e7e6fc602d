package specialcase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fendlconv/internal/catalog"
	"fendlconv/internal/endf"
	"fendlconv/internal/services"
)

// table registers every known correction. Extend it when a new release ships
// with defective or unsplit data.
var table = map[key]Rule{
	{"3.0", catalog.ParticleNeutron, StageProcess, "19K_039.ace"}: &sentinelSkip{
		filename: "19K_039.ace",
		sentinel: "Inf",
		reason: "contains 'Inf' values within the XSS array which prevent " +
			"conversion; this is a known issue in FENDL-3.0",
	},
	{"2.1", catalog.ParticlePhoton, StageExtract, "FENDLEP.DAT"}: &splitEvaluations{
		filename: "FENDLEP.DAT",
	},
}

// sentinelSkip scans its file for an unrepresentable numeric sentinel and
// marks the file skip-with-warning when found.
type sentinelSkip struct {
	filename string
	sentinel string
	reason   string
}

func (r *sentinelSkip) Apply(_ context.Context, workingDir string, _ *slog.Logger) (Result, error) {
	path := filepath.Join(workingDir, r.filename)
	data, err := os.ReadFile(path)
	if err != nil {
		// The catalog references a file that is not on disk; that is a
		// configuration error, not a data defect.
		return Result{}, services.Wrap(services.ErrConfiguration, "special case", "open target", path, err)
	}
	if !strings.Contains(string(data), r.sentinel) {
		return Result{}, nil
	}
	message := fmt.Sprintf("%s %s; %s has not been added to the cross section library",
		r.filename, r.reason, r.filename)
	return Result{Skip: true, Message: message}, nil
}

// splitEvaluations runs the record-stream splitter over a known
// multi-evaluation file so the convert stage sees one file per nuclide.
type splitEvaluations struct {
	filename string
}

func (r *splitEvaluations) Apply(_ context.Context, workingDir string, logger *slog.Logger) (Result, error) {
	path := filepath.Join(workingDir, r.filename)
	file, err := os.Open(path)
	if err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "special case", "open target", path, err)
	}
	defer file.Close()

	splitter := &endf.Splitter{Logger: logger}
	created, err := splitter.Split(file, workingDir)
	if err != nil {
		return Result{}, err
	}
	if logger != nil {
		logger.Info("split multi-evaluation file",
			slog.String("file", r.filename),
			slog.Int("evaluations", len(created)),
		)
	}
	return Result{}, nil
}
