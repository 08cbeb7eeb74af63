// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the ampel2ocsf command line
package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"sigs.k8s.io/release-utils/helpers"
	"sigs.k8s.io/release-utils/version"

	"github.com/carabiner-dev/evidence"
)

const (
	defaultInput  = "ampel.intoto.json"
	defaultOutput = "evidence.json"

	// stdioPath makes the command write the evidence to STDOUT
	stdioPath = "-"
)

type convertOptions struct {
	Input      string
	Output     string
	ConfigFile string
	LogLevel   string
}

func (o *convertOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Input, "input", "i", defaultInput, "ampel attestation bundle to convert")
	cmd.PersistentFlags().StringVarP(&o.Output, "output", "o", defaultOutput, "path to write the evidence record, - for STDOUT")
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "", "YAML file with the product metadata written in the evidence")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// Validate checks the options before running the conversion
func (o *convertOptions) Validate() error {
	errs := []error{}
	if o.Input == "" {
		errs = append(errs, errors.New("no input file specified"))
	} else if !helpers.Exists(o.Input) {
		errs = append(errs, fmt.Errorf("input file not found: %q", o.Input))
	}
	if o.Output == "" {
		errs = append(errs, errors.New("no output file specified"))
	}
	if o.ConfigFile != "" && !helpers.Exists(o.ConfigFile) {
		errs = append(errs, fmt.Errorf("config file not found: %q", o.ConfigFile))
	}
	return errors.Join(errs...)
}

// New returns the root command
func New() *cobra.Command {
	opts := &convertOptions{}
	root := &cobra.Command{
		Use:   "ampel2ocsf",
		Short: "Convert ampel policy results into OCSF evidence",
		Long: `ampel2ocsf reads an ampel evaluation attestation (a sigstore bundle
wrapping an in-toto statement) and writes an OCSF Scan Activity evidence
record summarizing the evaluated policies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("parsing log level: %w", err)
			}
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, opts)
		},
	}
	opts.AddFlags(root)
	root.AddCommand(version.WithFont("doom"))
	return root
}

func runConvert(cmd *cobra.Command, opts *convertOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	funcs := []evidence.InitFunction{}
	if opts.ConfigFile != "" {
		conf, err := loadConfig(opts.ConfigFile)
		if err != nil {
			return err
		}
		funcs = append(funcs, conf.InitFunctions()...)
	}

	converter, err := evidence.New(funcs...)
	if err != nil {
		return fmt.Errorf("creating converter: %w", err)
	}

	if opts.Output == stdioPath {
		ev, err := converter.ConvertFile(opts.Input)
		if err != nil {
			return fmt.Errorf("converting %s: %w", opts.Input, err)
		}
		if err := evidence.WriteEvidence(cmd.OutOrStdout(), ev); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Successfully converted %s\n", opts.Input) //nolint:errcheck
		return nil
	}

	if err := converter.ConvertFileTo(opts.Input, opts.Output); err != nil {
		return fmt.Errorf("converting %s: %w", opts.Input, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully converted %s to %s\n", opts.Input, opts.Output) //nolint:errcheck
	return nil
}
