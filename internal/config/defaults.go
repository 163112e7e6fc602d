package config

const (
	defaultConfigLocation         = "~/.config/fendlconv/config.toml"
	defaultWorkDir                = "~/.local/share/fendlconv/work"
	defaultLedgerPath             = "~/.local/share/fendlconv/ledger.db"
	defaultLockPath               = "~/.local/share/fendlconv/fendlconv.lock"
	defaultDownloadTimeoutSeconds = 1800
	defaultUnzipBinary            = "unzip"
	defaultToolBinary             = "openmc-nd-convert"
	defaultLibVer                 = "earliest"
	defaultRelease                = "3.1d"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:    defaultWorkDir,
			LedgerPath: defaultLedgerPath,
			LockPath:   defaultLockPath,
		},
		Download: Download{
			Enabled:        true,
			TimeoutSeconds: defaultDownloadTimeoutSeconds,
			Progress:       true,
		},
		Extract: Extract{
			Enabled:     true,
			UnzipBinary: defaultUnzipBinary,
		},
		Convert: Convert{
			ToolBinary: defaultToolBinary,
			LibVer:     defaultLibVer,
		},
		Library: Library{
			Release:   defaultRelease,
			Particles: []string{"neutron", "photon"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
