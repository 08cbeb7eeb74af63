// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ampel

import (
	"strings"

	"github.com/carabiner-dev/evidence/predicate/json"
)

// StatusUnknown is the status assumed when the predicate does not record one
const StatusUnknown = "UNKNOWN"

// ResultSet is a lenient reading of an ampel results predicate. It only
// holds the fields needed to summarize an evaluation.
type ResultSet struct {
	// Status is the upper-cased evaluation status
	Status      string
	DateStart   string
	PolicySetID string
	Frameworks  []Framework
	Results     []Result
}

// Framework is a compliance framework listed in the result set metadata
type Framework struct {
	ID   string
	Name string
}

// Result is a single policy evaluation in the set
type Result struct {
	PolicyID string
	Status   string
}

// FrameworkName returns the name of the first framework or an empty string
func (rs *ResultSet) FrameworkName() string {
	if rs == nil || len(rs.Frameworks) == 0 {
		return ""
	}
	return rs.Frameworks[0].Name
}

// PolicyIDs returns the ids of the evaluated policies, in order, skipping
// results without one. Repeated ids are kept.
func (rs *ResultSet) PolicyIDs() []string {
	ret := []string{}
	if rs == nil {
		return ret
	}
	for _, r := range rs.Results {
		if r.PolicyID != "" {
			ret = append(ret, r.PolicyID)
		}
	}
	return ret
}

// Extract reads a result set from a predicate object. It never fails: any
// missing field, or field of an unexpected type, is read as its default.
func Extract(pred json.DataMap) *ResultSet {
	meta := pred.GetMap("meta")
	policySet := pred.GetMap("policy_set")

	rs := &ResultSet{
		Status:      strings.ToUpper(pred.GetString("status", StatusUnknown)),
		DateStart:   pred.GetString("date_start", ""),
		PolicySetID: policySet.GetString("id", ""),
		Frameworks:  []Framework{},
		Results:     []Result{},
	}

	frameworks := meta.GetList("frameworks")
	for i := range frameworks {
		fw := frameworks.Map(i)
		rs.Frameworks = append(rs.Frameworks, Framework{
			ID:   fw.GetString("id", ""),
			Name: fw.GetString("name", ""),
		})
	}

	results := pred.GetList("results")
	for i := range results {
		r := results.Map(i)
		rs.Results = append(rs.Results, Result{
			PolicyID: r.GetStringPath("", "policy", "id"),
			Status:   strings.ToUpper(r.GetString("status", "")),
		})
	}

	return rs
}
