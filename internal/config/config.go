// Package config loads the awaybot TOML configuration file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds everything the responder needs that is not a credential.
type Config struct {
	Label          string   `toml:"label"`           // marker label name
	VacationStart  string   `toml:"vacation_start"`  // mm/dd/yyyy cutoff date
	Interval       duration `toml:"interval"`        // polling interval
	Body           string   `toml:"body"`            // vacation notice text
	DefaultSubject string   `toml:"default_subject"` // subject fallback
	From           string   `toml:"from"`            // sender identity
	MaxThreads     int      `toml:"max_threads"`     // threads handled per cycle
	PageSize       int      `toml:"page_size"`       // Gmail list page size (<=500)
	RPS            int      `toml:"rps"`             // max requests per second
	AuthDir        string   `toml:"auth_dir"`        // gmailctl auth directory
}

// duration lets TOML carry values like "30s" or "5m".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = duration(parsed)
	return nil
}

// PollInterval returns the configured interval as a time.Duration.
func (c Config) PollInterval() time.Duration { return time.Duration(c.Interval) }

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Label:      "VACATION",
		Interval:   duration(30 * time.Second),
		From:       "me",
		MaxThreads: 10,
		PageSize:   100,
		RPS:        4,
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateCutoff checks the vacation start date format the Gmail after:
// operand expects from this tool.
func ValidateCutoff(date string) error {
	if _, err := time.Parse("01/02/2006", date); err != nil {
		return fmt.Errorf("vacation start must be mm/dd/yyyy: %w", err)
	}
	return nil
}
