package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the content of a -config file. Flags given on the command line
// override it.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	TraceFile string `yaml:"trace_file"`
	Format    string `yaml:"format"`
	Strict    bool   `yaml:"strict"`
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadSettings merges the -config file into the common flags. A flag given
// on the command line wins over the file.
func loadSettings(fs *flag.FlagSet, opts *CommonOptions) (Config, error) {
	cfg := Config{LogLevel: opts.LogLevel, TraceFile: opts.TraceFile}
	if opts.ConfigFile == "" {
		return cfg, nil
	}

	file, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return cfg, err
	}

	if file.LogLevel != "" && !flagGiven(fs, "log-level") {
		cfg.LogLevel = file.LogLevel
	}
	if file.TraceFile != "" && !flagGiven(fs, "trace") {
		cfg.TraceFile = file.TraceFile
	}
	cfg.Format = file.Format
	cfg.Strict = file.Strict
	return cfg, nil
}

// overrideString sets *dst from the config value unless the flag was given.
func overrideString(fs *flag.FlagSet, name string, dst *string, value string) {
	if value != "" && !flagGiven(fs, name) {
		*dst = value
	}
}

// overrideBool sets *dst from the config value unless the flag was given.
func overrideBool(fs *flag.FlagSet, name string, dst *bool, value bool) {
	if value && !flagGiven(fs, name) {
		*dst = value
	}
}
