// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/config"
	"github.com/katalvlaran/connstat/fdr"
	"github.com/katalvlaran/connstat/metrics"
	"github.com/katalvlaran/connstat/pipeline"
)

// addConfigFlags registers one flag per configuration key. Flag names use
// dashes; the key is the same name with underscores.
func addConfigFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.String("data-dir", d.DataDir, "study root holding sub-<id> directories")
	fs.String("connectome", d.Connectome, "connectome file name inside sub-<id>/dwi/connectome")
	fs.StringSlice("subjects", nil, "subject ids (default: every sub-* directory)")
	fs.String("exclude-file", "", "file listing subject ids to exclude, one per line")
	fs.String("group-rule", d.GroupRule, "control group rule: contains:|prefix:|suffix:|regexp:|set:")
	fs.Int("target-shape", d.TargetShape, "common matrix dimension (0 = infer from first square matrix)")
	fs.Float64("alpha", d.Alpha, "significance threshold on corrected p-values")
	fs.String("correction", d.Correction, "multiple-comparison method: bh|by|bonferroni")
	fs.Int("workers", d.Workers, "parallel workers (0 = GOMAXPROCS)")
	fs.Bool("fail-on-degenerate", d.FailOnDegenerate, "abort on the first edge without variance")
	fs.String("output-dir", d.OutputDir, "directory for result files")
	fs.Bool("write-raw", d.WriteRaw, "also write the uncorrected p-value matrix")
	fs.String("log-level", d.LogLevel, "log level: debug|info|warn|error")
	fs.String("log-format", d.LogFormat, "log format: text|json")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus textfile metrics to this path")
}

// resolveConfig loads file and environment settings, then applies every flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	var ferr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if f.Value.Type() == "stringSlice" {
			v, err := cmd.Flags().GetStringSlice(f.Name)
			if err != nil {
				ferr = err
			}
			raw[key] = v
			return
		}
		raw[key] = f.Value.String()
	})
	if ferr != nil {
		return nil, ferr
	}
	if err = cfg.Decode(raw); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load cohorts, test every edge, correct and write results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return runStudy(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	addConfigFlags(cmd.Flags())

	return cmd
}

// runStudy executes one pipeline run described by cfg. Result paths go to
// stdout, logs to stderr.
func runStudy(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	log := cfg.NewLogger(stderr)

	src := cohort.NewDirSource(os.DirFS(cfg.DataDir), cfg.Connectome)
	ids := cfg.Subjects
	if len(ids) == 0 {
		var err error
		if ids, err = src.Discover(); err != nil {
			return err
		}
	}
	if cfg.ExcludeFile != "" {
		f, err := os.Open(cfg.ExcludeFile)
		if err != nil {
			return fmt.Errorf("exclude list: %w", err)
		}
		drop, err := cohort.ReadIDList(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		before := len(ids)
		ids = cohort.Exclude(ids, drop)
		log.WithField("excluded", before-len(ids)).Info("exclusion list applied")
	}

	isControl, err := cohort.ParsePredicate(cfg.GroupRule)
	if err != nil {
		return err
	}
	method, err := fdr.ParseMethod(cfg.Correction)
	if err != nil {
		return err
	}

	storeOpts := []cohort.Option{cohort.WithTargetShape(cfg.TargetShape), cohort.WithLogger(log)}
	if cfg.Workers > 0 {
		storeOpts = append(storeOpts, cohort.WithWorkers(cfg.Workers))
	}
	store := cohort.NewStore(src, isControl, storeOpts...)

	m := metrics.New()
	opts := pipeline.DefaultOptions()
	opts.Alpha = cfg.Alpha
	opts.Correction = method
	opts.Workers = cfg.Workers
	opts.FailOnDegenerate = cfg.FailOnDegenerate
	opts.Logger = log
	opts.Metrics = m

	res, runErr := pipeline.NewRunner(store, ids, opts).Run(ctx)
	if cfg.MetricsFile != "" {
		if err = m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).Warn("metrics not written")
		}
	}
	if runErr != nil {
		return runErr
	}

	paths, err := pipeline.WriteOutputs(cfg.OutputDir, res, cfg.WriteRaw)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}

	return nil
}
