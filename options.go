// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"errors"

	"github.com/carabiner-dev/evidence/ocsf"
)

var defaultOptions = Options{
	Evidence: ocsf.DefaultOptions,
}

// Options groups the configuration knobs of the converter
type Options struct {
	// Evidence controls the constant fields written in the records
	Evidence ocsf.Options
}

type InitFunction func(*Converter) error

func WithEvidenceOptions(opts ocsf.Options) InitFunction {
	return func(c *Converter) error {
		c.Options.Evidence = opts
		return nil
	}
}

func WithProductName(name string) InitFunction {
	return func(c *Converter) error {
		if name == "" {
			return errors.New("product name cannot be empty")
		}
		c.Options.Evidence.ProductName = name
		return nil
	}
}

func WithVendorName(name string) InitFunction {
	return func(c *Converter) error {
		c.Options.Evidence.VendorName = name
		return nil
	}
}

func WithProductVersion(version string) InitFunction {
	return func(c *Converter) error {
		c.Options.Evidence.ProductVersion = version
		return nil
	}
}

func WithLogProvider(provider string) InitFunction {
	return func(c *Converter) error {
		c.Options.Evidence.LogProvider = provider
		return nil
	}
}

// WithObservableName sets the file name recorded as the scan observable
func WithObservableName(name string) InitFunction {
	return func(c *Converter) error {
		if name == "" {
			return errors.New("observable name cannot be empty")
		}
		c.Options.Evidence.ObservableName = name
		return nil
	}
}
