// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package ampel reads the policy evaluation results recorded in ampel
// attestations.
package ampel

import (
	"slices"
	"strings"

	"github.com/carabiner-dev/attestation"
	"github.com/carabiner-dev/predicates"
)

var (
	PredicateTypeResults = attestation.PredicateType("https://carabiner.dev/ampel/results/v0.0.1")

	PredicateTypes = []attestation.PredicateType{
		PredicateTypeResults,
		predicates.PredicateTypeResult,
		predicates.PredicateTypeResultSet,
		predicates.PredicateTypeResultGroup,
	}
)

const resultsTypePrefix = "https://carabiner.dev/ampel/result"

// IsResultsPredicateType returns true if pt is one of the ampel evaluation
// result predicate types.
func IsResultsPredicateType(pt attestation.PredicateType) bool {
	if slices.Contains(PredicateTypes, pt) {
		return true
	}
	return strings.HasPrefix(string(pt), resultsTypePrefix)
}
