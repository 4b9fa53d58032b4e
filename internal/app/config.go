package app

import (
	"errors"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Family is the component family to bind, e.g. "applications.hello".
	Family string
	// Instance is the runtime instance name, the leading namespace segment
	// configuration assignments are matched against. Defaults to the last
	// family segment.
	Instance string
	// ConfigPath is an explicitly requested configuration file, outranking
	// any discovered one.
	ConfigPath string
	// SearchPath lists the directories probed for an instance-named
	// configuration file. Defaults to the working directory.
	SearchPath []string
	// Assignments are the raw --key=value arguments, the highest layer.
	Assignments []string

	LogFormat string
	LogLevel  string
	Watch     bool
}

// NewConfig validates a Config and fills the derivable fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Family == "" {
		return nil, errors.New("Family is a required configuration field and cannot be empty")
	}
	cfg.Family = strings.ReplaceAll(cfg.Family, "/", ".")

	if cfg.Instance == "" {
		segs := strings.Split(cfg.Family, ".")
		cfg.Instance = segs[len(segs)-1]
	}
	if len(cfg.SearchPath) == 0 {
		cfg.SearchPath = []string{"."}
	}
	if cfg.Watch && cfg.ConfigPath == "" {
		return nil, errors.New("Watch requires an explicit configuration file (--config)")
	}
	return &cfg, nil
}
