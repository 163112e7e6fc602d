package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fendlconv/internal/catalog"
	"fendlconv/internal/config"
	"fendlconv/internal/download"
	"fendlconv/internal/ledger"
	"fendlconv/internal/logging"
	"fendlconv/internal/physics"
	"fendlconv/internal/pipeline"
	"fendlconv/internal/services/unzip"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		release     string
		particles   []string
		destination string
		workDir     string
		libver      string
		converter   string
		logLevel    string
		logFormat   string
		doDownload  bool
		doExtract   bool
		cleanup     bool
		insecureTLS bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download, extract, and convert a FENDL release",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg, runFlags{
				release:     release,
				particles:   particles,
				destination: destination,
				workDir:     workDir,
				libver:      libver,
				converter:   converter,
				logLevel:    logLevel,
				logFormat:   logFormat,
				download:    doDownload,
				extract:     doExtract,
				cleanup:     cleanup,
				insecureTLS: insecureTLS,
			})
			if err := cfg.Validate(); err != nil {
				return err
			}
			return executeRun(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&release, "release", "r", "", "FENDL release to convert (3.1d, 3.1a, 3.0, 2.1)")
	cmd.Flags().StringSliceVarP(&particles, "particles", "p", nil, "Particle kinds to process (neutron, photon)")
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Output library directory")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "Scratch directory for downloads and staging")
	cmd.Flags().StringVar(&libver, "libver", "", "HDF5 versioning policy (earliest, latest)")
	cmd.Flags().StringVar(&converter, "converter", "", "Converter binary")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
	cmd.Flags().BoolVar(&doDownload, "download", true, "Fetch release archives before extracting")
	cmd.Flags().BoolVar(&doExtract, "extract", true, "Unpack archives before converting")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Remove archives and staging directories as stages finish")
	cmd.Flags().BoolVar(&insecureTLS, "insecure-tls", false, "Skip TLS certificate verification")

	return cmd
}

type runFlags struct {
	release     string
	particles   []string
	destination string
	workDir     string
	libver      string
	converter   string
	logLevel    string
	logFormat   string
	download    bool
	extract     bool
	cleanup     bool
	insecureTLS bool
}

// applyRunFlags lets explicitly set flags win over the configuration file.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) {
	if flags.release != "" {
		cfg.Library.Release = strings.TrimSpace(flags.release)
	}
	if len(flags.particles) > 0 {
		cfg.Library.Particles = flags.particles
	}
	if flags.destination != "" {
		cfg.Paths.DestinationDir = flags.destination
	}
	if flags.workDir != "" {
		cfg.Paths.WorkDir = flags.workDir
	}
	if flags.libver != "" {
		cfg.Convert.LibVer = strings.ToLower(strings.TrimSpace(flags.libver))
	}
	if flags.converter != "" {
		cfg.Convert.ToolBinary = flags.converter
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	if cmd.Flags().Changed("download") {
		cfg.Download.Enabled = flags.download
	}
	if cmd.Flags().Changed("extract") {
		cfg.Extract.Enabled = flags.extract
	}
	if cmd.Flags().Changed("cleanup") {
		cfg.Convert.Cleanup = flags.cleanup
	}
	if cmd.Flags().Changed("insecure-tls") {
		cfg.Download.InsecureTLS = flags.insecureTLS
	}
}

func executeRun(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.OutputPaths,
	})
	if err != nil {
		return err
	}

	lock := flock.New(cfg.Paths.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another fendlconv run holds %s", cfg.Paths.LockPath)
	}
	defer lock.Unlock()

	out := cmd.OutOrStdout()
	specs, err := catalog.Select(cfg.Library.Release, cfg.ParticleKinds())
	if err != nil {
		return err
	}
	if cfg.Download.Enabled {
		compressedMB, uncompressedMB := catalog.TotalSizes(specs)
		fmt.Fprintf(out, "About to download approximately %s of archives; extraction needs another %s.\n",
			humanize.IBytes(uint64(compressedMB)<<20), humanize.IBytes(uint64(uncompressedMB)<<20))
	}

	store, err := ledger.Open(cfg.Paths.LedgerPath)
	if err != nil {
		return err
	}
	defer store.Close()

	progress := cfg.Download.Progress && isatty.IsTerminal(os.Stdout.Fd())
	collab := pipeline.Collaborators{
		Fetcher: &download.Fetcher{
			Logger:   logger,
			Insecure: cfg.Download.InsecureTLS,
			Progress: progress,
			Timeout:  time.Duration(cfg.Download.TimeoutSeconds) * time.Second,
		},
		Extractor: unzip.NewCLI(unzip.WithBinary(cfg.Extract.UnzipBinary)),
		Converter: physics.NewTool(physics.WithBinary(cfg.Convert.ToolBinary)),
		Ledger:    store,
	}

	p, err := pipeline.New(pipeline.Options{
		Release:     cfg.Library.Release,
		Particles:   cfg.ParticleKinds(),
		WorkDir:     cfg.Paths.WorkDir,
		Destination: cfg.Paths.DestinationDir,
		LibVer:      cfg.LibVer(),
		Download:    cfg.Download.Enabled,
		Extract:     cfg.Extract.Enabled,
		Cleanup:     cfg.Convert.Cleanup,
		Logger:      logger,
	}, collab)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(runCtx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Library written to %s (%d containers, %s)\n",
		result.ManifestPath, result.Registered, result.Elapsed.Round(time.Second))
	if len(result.Summaries) > 0 {
		fmt.Fprintln(out, renderSummaryTable(result.Summaries))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "WARNING: %s\n", warning)
	}
	return nil
}

func renderSummaryTable(summaries []ledger.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Particle,
			fmt.Sprintf("%d", summary.Converted),
			fmt.Sprintf("%d", summary.Skipped),
			fmt.Sprintf("%d", summary.Failed),
		})
	}
	return renderTable(
		[]string{"PARTICLE", "CONVERTED", "SKIPPED", "FAILED"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}
