// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ocsf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carabiner-dev/evidence/predicate/ampel"
)

// DefaultPolicyName is used when the result set does not name its policy set
const DefaultPolicyName = "Ampel Policy"

// PolicyDescriptor summarizes the policies evaluated in a result set
type PolicyDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Sources     []PolicySource `json:"sources"`
}

// PolicySource is an evaluated policy. The policy, rule data and config
// containers are always empty.
type PolicySource struct {
	Name     string         `json:"name"`
	Policy   []any          `json:"policy"`
	RuleData map[string]any `json:"ruleData"`
	Config   map[string]any `json:"config"`
}

// NewPolicySource returns a source entry for a policy id
func NewPolicySource(id string) PolicySource {
	return PolicySource{
		Name:     id,
		Policy:   []any{},
		RuleData: map[string]any{},
		Config:   map[string]any{},
	}
}

// PolicyName returns the name of the evaluated policy set
func PolicyName(rs *ampel.ResultSet) string {
	if rs == nil || rs.PolicySetID == "" {
		return DefaultPolicyName
	}
	return rs.PolicySetID
}

// PolicyDescription describes the policy from its framework, if known
func PolicyDescription(rs *ampel.ResultSet) string {
	if name := rs.FrameworkName(); name != "" {
		return fmt.Sprintf("Policy from %s", name)
	}
	return DefaultPolicyName
}

// NewPolicyDescriptor builds the descriptor of a result set
func NewPolicyDescriptor(rs *ampel.ResultSet) *PolicyDescriptor {
	pd := &PolicyDescriptor{
		Name:        PolicyName(rs),
		Description: PolicyDescription(rs),
		Sources:     []PolicySource{},
	}
	for _, id := range rs.PolicyIDs() {
		pd.Sources = append(pd.Sources, NewPolicySource(id))
	}
	return pd
}

// ToJSON returns the compact JSON form of the descriptor
func (pd *PolicyDescriptor) ToJSON() (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pd); err != nil {
		return "", fmt.Errorf("encoding policy descriptor: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// PolicyUID derives the policy uid from its name
func PolicyUID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// EventUID derives the event metadata uid from the policy name
func EventUID(name string) string {
	return "ampel-" + strings.ReplaceAll(name, " ", "-")
}
