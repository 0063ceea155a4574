package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"personmatch/internal/matching"
	"personmatch/internal/table"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.History.Enabled && c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.DefaultMode == "" {
		return nil
	}
	if _, err := matching.ParseMode(c.Matching.DefaultMode); err != nil {
		return fmt.Errorf("matching.default_mode: %w", err)
	}
	return nil
}

func (c *Config) validateInput() error {
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if !table.ValidDelimiter(c.DelimiterRune()) {
		return fmt.Errorf("input.delimiter %q cannot separate fields", c.Input.Delimiter)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
