// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ocsf

import "strings"

type StatusID int

const (
	StatusIDUnknown StatusID = 0
	StatusIDSuccess StatusID = 1
	StatusIDFailure StatusID = 2
)

var statusLabels = map[StatusID]string{
	StatusIDUnknown: "unknown",
	StatusIDSuccess: "success",
	StatusIDFailure: "failure",
}

// String returns the OCSF status label
func (id StatusID) String() string {
	if l, ok := statusLabels[id]; ok {
		return l
	}
	return statusLabels[StatusIDUnknown]
}

// StatusFromString maps an ampel evaluation status to its OCSF status.
// Anything other than PASS or FAIL is unknown.
func StatusFromString(status string) StatusID {
	switch strings.ToUpper(status) {
	case "FAIL":
		return StatusIDFailure
	case "PASS":
		return StatusIDSuccess
	default:
		return StatusIDUnknown
	}
}
