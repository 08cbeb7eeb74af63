// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package ocsf models the evidence record emitted for an ampel evaluation,
// shaped as an OCSF Scan Activity event with a policy attached.
package ocsf

// OCSF classification of the evidence events
const (
	CategoryNameApplicationActivity = "Application Activity"
	CategoryUIDApplicationActivity  = 6

	ClassNameScanActivity = "Scan Activity"
	ClassUIDScanActivity  = 6007

	// TypeUIDScanActivity is the event type of scans with unknown activity
	TypeUIDScanActivity = ClassUIDScanActivity*10 + ActivityIDUnknown

	ActivityIDUnknown = 0

	ActionObserved   = "observed"
	ActionIDObserved = 3

	SeverityUnknown   = "unknown"
	SeverityIDUnknown = 0

	ObservableTypeFileName   = "File Name"
	ObservableTypeIDFileName = 7

	ScanTypeIDUnknown = 0
)

// Evidence is the normalized record of one policy evaluation. Fields are
// declared in the order they are serialized.
type Evidence struct {
	ActivityID   int          `json:"activity_id"`
	ActivityName string       `json:"activity_name"`
	CategoryName string       `json:"category_name"`
	CategoryUID  int          `json:"category_uid"`
	ClassName    string       `json:"class_name"`
	ClassUID     int          `json:"class_uid"`
	Cloud        Cloud        `json:"cloud"`
	EventDay     int          `json:"event_day"`
	Metadata     Metadata     `json:"metadata"`
	NumFiles     int          `json:"num_files"`
	Observables  []Observable `json:"observables"`
	OSINT        []any        `json:"osint"`
	Scan         Scan         `json:"scan"`
	Severity     string       `json:"severity"`
	SeverityID   int          `json:"severity_id"`
	Status       string       `json:"status"`
	StatusID     StatusID     `json:"status_id"`
	Time         int64        `json:"time"`
	TypeName     string       `json:"type_name"`
	TypeUID      int          `json:"type_uid"`
	Policy       Policy       `json:"policy"`
	Action       string       `json:"action"`
	ActionID     int          `json:"action_id"`
}

type Cloud struct {
	Provider string `json:"provider"`
}

type Metadata struct {
	LogProvider string  `json:"log_provider"`
	Product     Product `json:"product"`
	UID         string  `json:"uid"`
	Version     string  `json:"version"`
}

type Product struct {
	Name       string `json:"name"`
	VendorName string `json:"vendor_name"`
	Version    string `json:"version"`
}

type Observable struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	TypeID int    `json:"type_id"`
}

type Scan struct {
	TypeID int `json:"type_id"`
}

// Policy is the policy attached to the event. Data holds the serialized
// PolicyDescriptor.
type Policy struct {
	Data string `json:"data"`
	Desc string `json:"desc"`
	Name string `json:"name"`
	UID  string `json:"uid"`
}
