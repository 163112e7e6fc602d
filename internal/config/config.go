package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"fendlconv/internal/catalog"
	"fendlconv/internal/physics"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database location configuration.
type Paths struct {
	WorkDir        string `toml:"work_dir"`
	DestinationDir string `toml:"destination_dir"`
	LedgerPath     string `toml:"ledger_path"`
	LockPath       string `toml:"lock_path"`
}

// Download contains configuration for the archive fetch stage.
type Download struct {
	Enabled        bool `toml:"enabled"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
	InsecureTLS    bool `toml:"insecure_tls"`
	Progress       bool `toml:"progress"`
}

// Extract contains configuration for the archive extraction stage.
type Extract struct {
	Enabled     bool   `toml:"enabled"`
	UnzipBinary string `toml:"unzip_binary"`
}

// Convert contains configuration for the HDF5 conversion stage.
type Convert struct {
	ToolBinary string `toml:"tool_binary"`
	LibVer     string `toml:"libver"`
	Cleanup    bool   `toml:"cleanup"`
}

// Library selects which release and particle kinds a run processes.
type Library struct {
	Release   string   `toml:"release"`
	Particles []string `toml:"particles"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format      string   `toml:"format"`
	Level       string   `toml:"level"`
	OutputPaths []string `toml:"output_paths"`
}

// Config encapsulates all configuration values for fendlconv.
//
// Configuration sections by subsystem:
//   - Paths: work tree, output library, run ledger, and lock file locations
//   - Download: fetch stage toggles and timeouts
//   - Extract: extraction stage toggle and unzip binary
//   - Convert: converter binary, HDF5 versioning policy, cleanup toggle
//   - Library: release version and particle kinds
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Download Download `toml:"download"`
	Extract  Extract  `toml:"extract"`
	Convert  Convert  `toml:"convert"`
	Library  Library  `toml:"library"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("fendlconv.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before any stage
// touches the filesystem.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir, filepath.Dir(c.Paths.LedgerPath), filepath.Dir(c.Paths.LockPath)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ParticleKinds returns the configured particles as catalog values. Call only
// after Validate has accepted the configuration.
func (c *Config) ParticleKinds() []catalog.Particle {
	particles := make([]catalog.Particle, len(c.Library.Particles))
	for i, particle := range c.Library.Particles {
		particles[i] = catalog.Particle(particle)
	}
	return particles
}

// LibVer returns the configured HDF5 versioning policy.
func (c *Config) LibVer() physics.LibVer {
	return physics.LibVer(c.Convert.LibVer)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
