package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeDeadTime()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.MinDelayMS <= 0 {
		c.Playback.MinDelayMS = defaultMinDelayMS
	}
	if c.Playback.DefaultSpeed <= 0 {
		c.Playback.DefaultSpeed = defaultPlaybackSpeed
	}
}

func (c *Config) normalizeDeadTime() {
	if c.DeadTime.ThresholdMS <= 0 {
		c.DeadTime.ThresholdMS = defaultDeadTimeThreshold
	}
	if c.DeadTime.CapMS <= 0 {
		c.DeadTime.CapMS = defaultDeadTimeCap
	}
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
