// Package option holds the optional YAML configuration for `cidrd
// serve`: the REST service's required parameters (bind address, port,
// database path) are positional CLI arguments per the CLI contract,
// but logging and timeout tuning are ambient concerns that don't fit
// as positional args and are loaded from an optional config file.
package option

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LogOptions controls the destination and verbosity of the service's
// log output.
type LogOptions struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	File     string `yaml:"file,omitempty"`
	Debug    bool   `yaml:"debug,omitempty"`
}

// ServeOptions is the optional configuration for `cidrd serve`.
type ServeOptions struct {
	LogOptions   LogOptions    `yaml:"log,omitempty"`
	ReadTimeout  time.Duration `yaml:"read-timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write-timeout,omitempty"`
}

// Default returns the options used when no --config file is given.
func Default() ServeOptions {
	return ServeOptions{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// ReadFile loads ServeOptions from a YAML file.
func ReadFile(path string) (*ServeOptions, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o := Default()
	if err := yaml.Unmarshal(content, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
