// SPDX-License-Identifier: MIT

// Package config provides file- and environment-driven configuration for a
// connstat run.
//
// Precedence, lowest first: Default, YAML file, CONNSTAT_* environment
// variables, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/fdr"
)

// EnvPrefix prefixes every environment override, e.g. CONNSTAT_ALPHA.
const EnvPrefix = "CONNSTAT_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all run configuration values.
type Config struct {
	DataDir          string   `mapstructure:"data_dir" yaml:"data_dir"`
	Connectome       string   `mapstructure:"connectome" yaml:"connectome"`
	Subjects         []string `mapstructure:"subjects" yaml:"subjects"`
	ExcludeFile      string   `mapstructure:"exclude_file" yaml:"exclude_file"`
	GroupRule        string   `mapstructure:"group_rule" yaml:"group_rule"`
	TargetShape      int      `mapstructure:"target_shape" yaml:"target_shape"`
	Alpha            float64  `mapstructure:"alpha" yaml:"alpha"`
	Correction       string   `mapstructure:"correction" yaml:"correction"`
	Workers          int      `mapstructure:"workers" yaml:"workers"`
	FailOnDegenerate bool     `mapstructure:"fail_on_degenerate" yaml:"fail_on_degenerate"`
	OutputDir        string   `mapstructure:"output_dir" yaml:"output_dir"`
	WriteRaw         bool     `mapstructure:"write_raw" yaml:"write_raw"`
	LogLevel         string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat        string   `mapstructure:"log_format" yaml:"log_format"`
	MetricsFile      string   `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// keys lists every recognized configuration key.
var keys = []string{
	"data_dir", "connectome", "subjects", "exclude_file", "group_rule",
	"target_shape", "alpha", "correction", "workers", "fail_on_degenerate",
	"output_dir", "write_raw", "log_level", "log_format", "metrics_file",
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		DataDir:    ".",
		Connectome: cohort.DefaultConnectome,
		GroupRule:  "contains:C",
		Alpha:      0.05,
		Correction: fdr.MethodBH.String(),
		OutputDir:  ".",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load builds a configuration from defaults, the YAML file at path (skipped
// when path is empty) and the process environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if err = cfg.ReadYAML(f); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadYAML merges the YAML document from r into c. Unknown keys are rejected.
func (c *Config) ReadYAML(r io.Reader) error {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse yaml: %w", err)
	}

	return c.Decode(raw)
}

// ApplyEnv merges CONNSTAT_<KEY> variables found by lookup into c.
// List values are comma separated.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	raw := map[string]any{}
	for _, k := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(k)); ok {
			raw[k] = v
		}
	}
	if len(raw) == 0 {
		return nil
	}

	return c.Decode(raw)
}

// Decode merges raw into c with weak typing: "0.01" becomes a float, "true"
// a bool, "a,b" a string list. Keys absent from raw keep their value.
func (c *Config) Decode(raw map[string]any) error {
	if _, ok := raw["subjects"]; ok {
		// Lists replace, never merge element-wise.
		c.Subjects = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	c.Subjects = trimAll(c.Subjects)

	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if c.Connectome == "" {
		errs = append(errs, errors.New("connectome is required"))
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		errs = append(errs, fmt.Errorf("alpha must be in (0, 1), got %v", c.Alpha))
	}
	if c.TargetShape < 0 {
		errs = append(errs, fmt.Errorf("target_shape must be >= 0, got %d", c.TargetShape))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if _, err := fdr.ParseMethod(c.Correction); err != nil {
		errs = append(errs, err)
	}
	if _, err := cohort.ParsePredicate(c.GroupRule); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// NewLogger returns a logrus logger writing to w with the configured level
// and formatter. Validate must have succeeded.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}
