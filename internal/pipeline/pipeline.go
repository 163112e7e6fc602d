package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"fendlconv/internal/catalog"
	"fendlconv/internal/endf"
	"fendlconv/internal/ledger"
	"fendlconv/internal/library"
	"fendlconv/internal/logging"
	"fendlconv/internal/physics"
	"fendlconv/internal/services"
	"fendlconv/internal/specialcase"
)

// Fetcher downloads one archive to disk.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Extractor unpacks one archive into a directory.
type Extractor interface {
	Extract(ctx context.Context, archivePath, outputDir string) error
}

// Collaborators are the external I/O boundaries the orchestrator calls into.
type Collaborators struct {
	Fetcher   Fetcher
	Extractor Extractor
	Converter physics.Converter
	Ledger    *ledger.Store
}

// Options selects what a run does.
type Options struct {
	Release     string
	Particles   []catalog.Particle
	WorkDir     string
	Destination string
	LibVer      physics.LibVer

	Download bool
	Extract  bool
	Cleanup  bool

	Logger *slog.Logger
}

// Result reports what a completed run produced.
type Result struct {
	RunID        string
	ManifestPath string
	Registered   int
	Warnings     []string
	Summaries    []ledger.Summary
	Elapsed      time.Duration
}

// Pipeline is the release-parameterized conversion state machine.
type Pipeline struct {
	opts     Options
	collab   Collaborators
	layout   Layout
	logger   *slog.Logger
	manifest *library.Manifest
	warnings []string
	runID    string
}

// New validates options and builds a runnable pipeline.
func New(opts Options, collab Collaborators) (*Pipeline, error) {
	if collab.Converter == nil {
		return nil, errors.New("pipeline: converter collaborator is required")
	}
	if opts.Download && collab.Fetcher == nil {
		return nil, errors.New("pipeline: fetcher collaborator is required when downloading")
	}
	if opts.Extract && collab.Extractor == nil {
		return nil, errors.New("pipeline: extractor collaborator is required when extracting")
	}
	if opts.Destination == "" {
		opts.Destination = DefaultDestination(opts.Release)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		opts:     opts,
		collab:   collab,
		layout:   Layout{WorkDir: opts.WorkDir, Release: opts.Release},
		logger:   logger.With(logging.String(logging.FieldRelease, opts.Release)),
		manifest: library.New(),
	}, nil
}

// Run executes the selected stages for every requested particle kind, writes
// the manifest, and returns the accumulated warnings.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	specs, err := catalog.Select(p.opts.Release, p.opts.Particles)
	if err != nil {
		return nil, err
	}

	if p.collab.Ledger != nil {
		particles := make([]string, len(specs))
		for i, spec := range specs {
			particles[i] = string(spec.Particle)
		}
		if p.runID, err = p.collab.Ledger.BeginRun(ctx, p.opts.Release, particles); err != nil {
			return nil, err
		}
	}

	stages := []struct {
		name    string
		enabled bool
		run     func(context.Context, catalog.ParticleSpec, *slog.Logger) error
	}{
		{"download", p.opts.Download, p.downloadStage},
		{"extract", p.opts.Extract, p.extractStage},
		{"convert", true, p.convertStage},
	}

	for _, spec := range specs {
		particleLogger := p.logger.With(logging.String(logging.FieldParticle, string(spec.Particle)))
		for _, stage := range stages {
			if !stage.enabled {
				particleLogger.Debug("stage skipped", logging.String(logging.FieldStage, stage.name))
				continue
			}
			stageLogger := particleLogger.With(logging.String(logging.FieldStage, stage.name))
			stageLogger.Info("stage started")
			if err := stage.run(ctx, spec, stageLogger); err != nil {
				stageLogger.Error("stage failed", logging.Error(err))
				return nil, err
			}
			stageLogger.Info("stage completed")
		}
	}

	if p.opts.Cleanup && p.opts.Extract {
		if err := os.RemoveAll(p.layout.DownloadDir()); err != nil {
			return nil, fmt.Errorf("cleanup download directory: %w", err)
		}
	}

	manifestPath := filepath.Join(p.opts.Destination, "cross_sections.xml")
	if err := p.manifest.ExportXML(manifestPath); err != nil {
		return nil, err
	}
	p.logger.Info("library index written",
		logging.String("path", manifestPath),
		logging.Int("containers", p.manifest.Len()),
	)

	result := &Result{
		RunID:        p.runID,
		ManifestPath: manifestPath,
		Registered:   p.manifest.Len(),
		Warnings:     append([]string(nil), p.warnings...),
		Elapsed:      time.Since(start),
	}
	if p.collab.Ledger != nil {
		if err := p.collab.Ledger.FinishRun(ctx, p.runID); err != nil {
			return nil, err
		}
		if result.Summaries, err = p.collab.Ledger.Summarize(ctx, p.runID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *Pipeline) downloadStage(ctx context.Context, spec catalog.ParticleSpec, logger *slog.Logger) error {
	downloadDir := p.layout.ParticleDownloadDir(spec.Particle)
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	for _, file := range spec.Files {
		archiveURL, err := url.JoinPath(spec.BaseURL, file)
		if err != nil {
			return fmt.Errorf("build archive url for %q: %w", file, err)
		}
		logger.Info("downloading archive", logging.String("file", file))
		if err := p.collab.Fetcher.Fetch(ctx, archiveURL, filepath.Join(downloadDir, file)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) extractStage(ctx context.Context, spec catalog.ParticleSpec, logger *slog.Logger) error {
	downloadDir := p.layout.ParticleDownloadDir(spec.Particle)
	stagingDir := p.layout.StagingDir(spec.Format)
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	for _, file := range spec.Files {
		archivePath := filepath.Join(downloadDir, file)
		logger.Info("extracting archive", logging.String("file", file))
		if err := p.collab.Extractor.Extract(ctx, archivePath, stagingDir); err != nil {
			return err
		}
		if p.opts.Cleanup {
			if err := os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove archive %q: %w", file, err)
			}
		}
	}

	rules := specialcase.ForStage(p.opts.Release, spec.Particle, specialcase.StageExtract)
	for _, filename := range sortedKeys(rules) {
		logger.Info("applying extract correction", logging.String("file", filename))
		result, err := rules[filename].Apply(ctx, stagingDir, logger)
		if err != nil {
			return err
		}
		p.addWarning(result.Message)
	}
	return nil
}

func (p *Pipeline) convertStage(ctx context.Context, spec catalog.ParticleSpec, logger *slog.Logger) error {
	destination := filepath.Join(p.opts.Destination, string(spec.Particle))
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	stagingDir := p.layout.StagingDir(spec.Format)
	files, err := spec.Discovery.Resolve(stagingDir)
	if err != nil {
		return err
	}
	files = filterCompatibilityDuplicates(files)
	logger.Info("discovered evaluation files", logging.Int("count", len(files)))

	for _, file := range files {
		if err := p.convertFile(ctx, spec, file, destination, logger); err != nil {
			return err
		}
	}

	if p.opts.Cleanup {
		if err := os.RemoveAll(stagingDir); err != nil {
			return fmt.Errorf("cleanup staging directory: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) convertFile(ctx context.Context, spec catalog.ParticleSpec, file, destination string, logger *slog.Logger) error {
	base := filepath.Base(file)

	if rule, ok := specialcase.Lookup(p.opts.Release, spec.Particle, specialcase.StageProcess, base); ok {
		result, err := rule.Apply(ctx, filepath.Dir(file), logger)
		if err != nil {
			if !services.Fatal(err) {
				logger.Warn("skipping known-defect file", logging.String("file", base), logging.Error(err))
				p.addWarning(err.Error())
				p.recordFile(ctx, spec.Particle, base, "", ledger.StatusSkipped, err.Error())
				return nil
			}
			return err
		}
		p.addWarning(result.Message)
		if result.Skip {
			logger.Warn("skipping known-defect file", logging.String("file", base))
			p.recordFile(ctx, spec.Particle, base, "", ledger.StatusSkipped, result.Message)
			return nil
		}
	}

	nuclide, err := p.identify(spec.Format, file)
	if err != nil {
		p.recordFile(ctx, spec.Particle, base, "", ledger.StatusFailed, err.Error())
		return err
	}
	name, err := nuclide.Name()
	if err != nil {
		p.recordFile(ctx, spec.Particle, base, "", ledger.StatusFailed, err.Error())
		return err
	}

	outputPath := filepath.Join(destination, name+".h5")
	logger.Info("converting evaluation",
		logging.String("file", base),
		logging.String("nuclide", name),
	)
	if err := p.convert(ctx, spec.Format, file, outputPath); err != nil {
		p.recordFile(ctx, spec.Particle, base, outputPath, ledger.StatusFailed, err.Error())
		return err
	}

	containerPath := filepath.Join(string(spec.Particle), name+".h5")
	if !p.manifest.Register(containerPath, name, manifestKind(spec.Particle)) {
		logger.Debug("container already registered", logging.String("path", containerPath))
	}
	p.recordFile(ctx, spec.Particle, base, outputPath, ledger.StatusConverted, "")
	return nil
}

func (p *Pipeline) identify(format catalog.Format, file string) (endf.Nuclide, error) {
	if format == catalog.FormatENDF {
		return physics.IdentifyENDF(file)
	}
	return physics.IdentifyACE(file)
}

func (p *Pipeline) convert(ctx context.Context, format catalog.Format, inputPath, outputPath string) error {
	if format == catalog.FormatENDF {
		return p.collab.Converter.ConvertENDF(ctx, inputPath, outputPath, p.opts.LibVer)
	}
	return p.collab.Converter.ConvertACE(ctx, inputPath, outputPath, p.opts.LibVer)
}

func (p *Pipeline) recordFile(ctx context.Context, particle catalog.Particle, source, output string, status ledger.FileStatus, message string) {
	if p.collab.Ledger == nil {
		return
	}
	err := p.collab.Ledger.RecordFile(ctx, ledger.FileRecord{
		RunID:      p.runID,
		Particle:   string(particle),
		SourcePath: source,
		OutputPath: output,
		Status:     status,
		Message:    message,
	})
	if err != nil {
		p.logger.Error("failed to record file outcome", logging.Error(err))
	}
}

func (p *Pipeline) addWarning(message string) {
	if message == "" {
		return
	}
	p.warnings = append(p.warnings, message)
}

// filterCompatibilityDuplicates drops files kept in the releases for
// backwards compatibility (trailing underscore) and sidecar index files.
func filterCompatibilityDuplicates(files []string) []string {
	kept := files[:0]
	for _, file := range files {
		base := filepath.Base(file)
		if len(base) > 0 && base[len(base)-1] == '_' {
			continue
		}
		if filepath.Ext(base) == ".xsd" {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

func manifestKind(particle catalog.Particle) library.Kind {
	if particle == catalog.ParticlePhoton {
		return library.KindPhoton
	}
	return library.KindNeutron
}

func sortedKeys(rules map[string]specialcase.Rule) []string {
	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
