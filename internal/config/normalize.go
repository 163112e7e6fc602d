package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeExtract()
	c.normalizeConvert()
	c.normalizeLibrary()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	// Empty means derive fendl-<release>-hdf5 from the release at run time.
	if strings.TrimSpace(c.Paths.DestinationDir) != "" {
		if c.Paths.DestinationDir, err = expandPath(c.Paths.DestinationDir); err != nil {
			return fmt.Errorf("paths.destination_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LedgerPath) == "" {
		c.Paths.LedgerPath = defaultLedgerPath
	}
	if c.Paths.LedgerPath, err = expandPath(c.Paths.LedgerPath); err != nil {
		return fmt.Errorf("paths.ledger_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockPath) == "" {
		c.Paths.LockPath = defaultLockPath
	}
	if c.Paths.LockPath, err = expandPath(c.Paths.LockPath); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	if c.Download.TimeoutSeconds <= 0 {
		c.Download.TimeoutSeconds = defaultDownloadTimeoutSeconds
	}
}

func (c *Config) normalizeExtract() {
	c.Extract.UnzipBinary = strings.TrimSpace(c.Extract.UnzipBinary)
	if c.Extract.UnzipBinary == "" {
		c.Extract.UnzipBinary = defaultUnzipBinary
	}
}

func (c *Config) normalizeConvert() {
	c.Convert.ToolBinary = strings.TrimSpace(c.Convert.ToolBinary)
	if c.Convert.ToolBinary == "" {
		c.Convert.ToolBinary = defaultToolBinary
	}
	c.Convert.LibVer = strings.ToLower(strings.TrimSpace(c.Convert.LibVer))
	if c.Convert.LibVer == "" {
		c.Convert.LibVer = defaultLibVer
	}
}

func (c *Config) normalizeLibrary() {
	c.Library.Release = strings.TrimSpace(c.Library.Release)
	if c.Library.Release == "" {
		c.Library.Release = defaultRelease
	}

	particles := make([]string, 0, len(c.Library.Particles))
	seen := make(map[string]struct{}, len(c.Library.Particles))
	for _, particle := range c.Library.Particles {
		normalized := strings.ToLower(strings.TrimSpace(particle))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		particles = append(particles, normalized)
	}
	if len(particles) == 0 {
		particles = []string{"neutron", "photon"}
	}
	c.Library.Particles = particles
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
