package config

import (
	"errors"
	"fmt"
	"strings"

	"fendlconv/internal/catalog"
	"fendlconv/internal/physics"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	supported := catalog.Releases()
	found := false
	for _, release := range supported {
		if release == c.Library.Release {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("library.release %q is not supported (supported: %s)",
			c.Library.Release, strings.Join(supported, ", "))
	}

	if len(c.Library.Particles) == 0 {
		return errors.New("library.particles must include at least one particle kind")
	}
	for _, particle := range c.Library.Particles {
		known := false
		for _, candidate := range catalog.Particles() {
			if string(candidate) == particle {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("library.particles entry %q is not supported", particle)
		}
	}
	return nil
}

func (c *Config) validateConvert() error {
	if !physics.LibVer(c.Convert.LibVer).Valid() {
		return fmt.Errorf("convert.libver must be %q or %q", physics.LibVerEarliest, physics.LibVerLatest)
	}
	if c.Convert.ToolBinary == "" {
		return errors.New("convert.tool_binary must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.TimeoutSeconds <= 0 {
		return errors.New("download.timeout_seconds must be positive")
	}
	return nil
}
