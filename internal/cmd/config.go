// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carabiner-dev/evidence"
)

// fileConfig is the optional YAML configuration. Keys left out keep the
// converter defaults.
type fileConfig struct {
	LogProvider string `yaml:"log_provider"`
	Product     string `yaml:"product"`
	Vendor      string `yaml:"vendor"`
	Version     string `yaml:"version"`
	Observable  string `yaml:"observable"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	conf := &fileConfig{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return conf, nil
}

// InitFunctions returns the converter options set in the file
func (fc *fileConfig) InitFunctions() []evidence.InitFunction {
	ret := []evidence.InitFunction{}
	if fc.LogProvider != "" {
		ret = append(ret, evidence.WithLogProvider(fc.LogProvider))
	}
	if fc.Product != "" {
		ret = append(ret, evidence.WithProductName(fc.Product))
	}
	if fc.Vendor != "" {
		ret = append(ret, evidence.WithVendorName(fc.Vendor))
	}
	if fc.Version != "" {
		ret = append(ret, evidence.WithProductVersion(fc.Version))
	}
	if fc.Observable != "" {
		ret = append(ret, evidence.WithObservableName(fc.Observable))
	}
	return ret
}
