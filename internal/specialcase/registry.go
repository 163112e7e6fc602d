package specialcase

import (
	"context"
	"log/slog"

	"fendlconv/internal/catalog"
)

// Stage names the pipeline step a rule attaches to.
type Stage string

const (
	// StageExtract rules run once per particle after its archives unpack.
	StageExtract Stage = "extract"
	// StageProcess rules run per file just before conversion.
	StageProcess Stage = "process"
)

// Result reports what a rule decided about its file.
type Result struct {
	Skip    bool
	Message string
}

// Rule is one correction. Apply operates on filename inside workingDir.
type Rule interface {
	Apply(ctx context.Context, workingDir string, logger *slog.Logger) (Result, error)
}

type key struct {
	release  string
	particle catalog.Particle
	stage    Stage
	filename string
}

// Lookup returns the rule registered for the given coordinates, if any.
func Lookup(release string, particle catalog.Particle, stage Stage, filename string) (Rule, bool) {
	rule, ok := table[key{release, particle, stage, filename}]
	return rule, ok
}

// ForStage returns every rule registered for a (release, particle, stage)
// combination, keyed by target filename.
func ForStage(release string, particle catalog.Particle, stage Stage) map[string]Rule {
	rules := make(map[string]Rule)
	for k, rule := range table {
		if k.release == release && k.particle == particle && k.stage == stage {
			rules[k.filename] = rule
		}
	}
	return rules
}
