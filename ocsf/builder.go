// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ocsf

import (
	"fmt"

	"github.com/carabiner-dev/evidence/predicate/ampel"
)

// Options control the constant parts of the evidence record
type Options struct {
	LogProvider     string
	ProductName     string
	VendorName      string
	ProductVersion  string
	MetadataVersion string

	// ObservableName is the file name recorded as the scan observable
	ObservableName string
}

var DefaultOptions = Options{
	LogProvider:     "ampel",
	ProductName:     "ampel",
	VendorName:      "carabiner",
	ProductVersion:  "v0.0.1",
	MetadataVersion: "v0.0.1",
	ObservableName:  "ampel.intoto.json",
}

type BuilderOption func(*Options)

func WithOptions(o Options) BuilderOption {
	return func(opts *Options) {
		*opts = o
	}
}

// Builder assembles evidence records
type Builder struct {
	Options Options
}

func NewBuilder(funcs ...BuilderOption) *Builder {
	opts := DefaultOptions
	for _, fn := range funcs {
		fn(&opts)
	}
	return &Builder{Options: opts}
}

// Build returns the evidence record of an evaluation result set
func (b *Builder) Build(rs *ampel.ResultSet) (*Evidence, error) {
	if rs == nil {
		rs = ampel.Extract(nil)
	}

	descriptor := NewPolicyDescriptor(rs)
	data, err := descriptor.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing policy data: %w", err)
	}

	status := StatusFromString(rs.Status)

	return &Evidence{
		ActivityID:   ActivityIDUnknown,
		ActivityName: "",
		CategoryName: CategoryNameApplicationActivity,
		CategoryUID:  CategoryUIDApplicationActivity,
		ClassName:    ClassNameScanActivity,
		ClassUID:     ClassUIDScanActivity,
		Cloud:        Cloud{Provider: ""},
		EventDay:     0,
		Metadata: Metadata{
			LogProvider: b.Options.LogProvider,
			Product: Product{
				Name:       b.Options.ProductName,
				VendorName: b.Options.VendorName,
				Version:    b.Options.ProductVersion,
			},
			UID:     EventUID(descriptor.Name),
			Version: b.Options.MetadataVersion,
		},
		NumFiles: 1,
		Observables: []Observable{
			{
				Name:   b.Options.ObservableName,
				Type:   ObservableTypeFileName,
				TypeID: ObservableTypeIDFileName,
			},
		},
		OSINT:      nil,
		Scan:       Scan{TypeID: ScanTypeIDUnknown},
		Severity:   SeverityUnknown,
		SeverityID: SeverityIDUnknown,
		Status:     status.String(),
		StatusID:   status,
		Time:       ParseTimestamp(rs.DateStart),
		TypeName:   "",
		TypeUID:    TypeUIDScanActivity,
		Policy: Policy{
			Data: data,
			Desc: descriptor.Description,
			Name: descriptor.Name,
			UID:  PolicyUID(descriptor.Name),
		},
		Action:   ActionObserved,
		ActionID: ActionIDObserved,
	}, nil
}
