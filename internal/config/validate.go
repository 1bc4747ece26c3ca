package config

import "errors"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateDeadTime()
}

func (c *Config) validatePlayback() error {
	if c.Playback.DefaultSpeed <= 0 {
		return errors.New("playback.default_speed must be positive")
	}
	if c.Playback.MinDelayMS <= 0 {
		return errors.New("playback.min_delay_ms must be positive")
	}
	return nil
}

func (c *Config) validateDeadTime() error {
	if c.DeadTime.ThresholdMS <= 0 {
		return errors.New("dead_time.threshold_ms must be positive")
	}
	if c.DeadTime.CapMS <= 0 {
		return errors.New("dead_time.cap_ms must be positive")
	}
	if c.DeadTime.CapMS > c.DeadTime.ThresholdMS {
		return errors.New("dead_time.cap_ms must not exceed dead_time.threshold_ms")
	}
	return nil
}
