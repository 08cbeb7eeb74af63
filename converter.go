// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package evidence converts ampel policy evaluation attestations into
// OCSF evidence records.
package evidence

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/carabiner-dev/evidence/envelope"
	"github.com/carabiner-dev/evidence/ocsf"
	"github.com/carabiner-dev/evidence/predicate/ampel"
)

// ErrMalformedInput is returned when the attestation cannot be decoded
var ErrMalformedInput = envelope.ErrMalformedInput

// New returns a new converter with the default options
func New(funcs ...InitFunction) (*Converter, error) {
	c := NewWithOptions(&defaultOptions)
	for _, fn := range funcs {
		if err := fn(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewWithOptions returns a new converter configured with a specific options set
func NewWithOptions(opts *Options) *Converter {
	return &Converter{
		Options: *opts,
	}
}

// Converter turns ampel result attestations into evidence records. The
// conversion does not keep any state, so a converter can be shared.
type Converter struct {
	Options Options
}

// Convert parses an attestation bundle and returns its evidence record.
// Only undecodable input is an error, missing predicate data is read as
// defaults.
func (c *Converter) Convert(data []byte) (*ocsf.Evidence, error) {
	env, err := envelope.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing attestation: %w", err)
	}
	return c.ConvertEnvelope(env)
}

// ConvertStream reads an attestation from r and converts it
func (c *Converter) ConvertStream(r io.Reader) (*ocsf.Evidence, error) {
	env, err := envelope.ParseStream(r)
	if err != nil {
		return nil, fmt.Errorf("parsing attestation: %w", err)
	}
	return c.ConvertEnvelope(env)
}

// ConvertFile reads an attestation from a file and converts it
func (c *Converter) ConvertFile(path string) (*ocsf.Evidence, error) {
	env, err := envelope.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing attestation: %w", err)
	}
	return c.ConvertEnvelope(env)
}

// ConvertEnvelope builds the evidence record from an already parsed envelope
func (c *Converter) ConvertEnvelope(env *envelope.Envelope) (*ocsf.Evidence, error) {
	if pt := env.GetPredicateType(); pt != "" && !ampel.IsResultsPredicateType(pt) {
		logrus.Warnf("predicate type %q is not an ampel result, converting anyway", pt)
	}

	rs := ampel.Extract(env.GetPredicate())
	logrus.Debugf(
		"Read result set: status %s, %d results, policy set %q",
		rs.Status, len(rs.Results), rs.PolicySetID,
	)
	for _, fw := range rs.Frameworks {
		logrus.Debugf("Result set framework %q (id %q)", fw.Name, fw.ID)
	}
	for _, r := range rs.Results {
		if r.PolicyID == "" {
			logrus.Debugf("Result with status %q has no policy id, skipping source", r.Status)
			continue
		}
		logrus.Debugf("Policy %s evaluated with status %q", r.PolicyID, r.Status)
	}

	ev, err := ocsf.NewBuilder(ocsf.WithOptions(c.Options.Evidence)).Build(rs)
	if err != nil {
		return nil, fmt.Errorf("building evidence: %w", err)
	}
	return ev, nil
}

// ConvertFileTo converts the attestation in path and writes the evidence
// to output. The output file is only created if the conversion succeeds.
func (c *Converter) ConvertFileTo(path, output string) error {
	ev, err := c.ConvertFile(path)
	if err != nil {
		return err
	}

	return writeEvidenceFile(output, ev, WriteEvidence)
}

// writeEvidenceFile writes ev to path with the write function. If writing
// fails, the partial file is removed.
func writeEvidenceFile(path string, ev *ocsf.Evidence, write func(io.Writer, *ocsf.Evidence) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := write(f, ev); err != nil {
		f.Close()       //nolint:errcheck
		os.Remove(path) //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path) //nolint:errcheck
		return fmt.Errorf("closing output file: %w", err)
	}
	logrus.Debugf("Wrote evidence to %s", path)
	return nil
}

// WriteEvidence writes the evidence record to w as indented JSON
func WriteEvidence(w io.Writer, ev *ocsf.Evidence) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return fmt.Errorf("writing JSON stream: %w", err)
	}
	return nil
}
