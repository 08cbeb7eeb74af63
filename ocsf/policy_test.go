// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ocsf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carabiner-dev/evidence/predicate/ampel"
)

func TestNewPolicyDescriptor(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name        string
		rs          *ampel.ResultSet
		expectName  string
		expectDesc  string
		expectNames []string
	}{
		{"nil", nil, DefaultPolicyName, DefaultPolicyName, []string{}},
		{"empty", &ampel.ResultSet{}, DefaultPolicyName, DefaultPolicyName, []string{}},
		{
			"named",
			&ampel.ResultSet{
				PolicySetID: "My Policy",
				Frameworks:  []ampel.Framework{{Name: "SLSA"}, {Name: "Other"}},
				Results: []ampel.Result{
					{PolicyID: "p1"}, {PolicyID: ""}, {PolicyID: "p2"}, {PolicyID: "p1"},
				},
			},
			"My Policy", "Policy from SLSA", []string{"p1", "p2", "p1"},
		},
		{
			"unnamed-framework",
			&ampel.ResultSet{Frameworks: []ampel.Framework{{ID: "x"}}},
			DefaultPolicyName, DefaultPolicyName, []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pd := NewPolicyDescriptor(tc.rs)
			require.Equal(t, tc.expectName, pd.Name)
			require.Equal(t, tc.expectDesc, pd.Description)
			names := []string{}
			for _, s := range pd.Sources {
				names = append(names, s.Name)
			}
			require.Equal(t, tc.expectNames, names)
		})
	}
}

func TestPolicyDescriptorToJSON(t *testing.T) {
	t.Parallel()
	pd := &PolicyDescriptor{
		Name:        "A & B <policy>",
		Description: DefaultPolicyName,
		Sources:     []PolicySource{NewPolicySource("p1")},
	}
	data, err := pd.ToJSON()
	require.NoError(t, err)
	require.Equal(t,
		`{"name":"A & B <policy>","description":"Ampel Policy","sources":[{"name":"p1","policy":[],"ruleData":{},"config":{}}]}`,
		data,
	)

	empty, err := NewPolicyDescriptor(nil).ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"name":"Ampel Policy","description":"Ampel Policy","sources":[]}`, empty)

	// The string must decode back to the same descriptor
	var decoded PolicyDescriptor
	require.NoError(t, json.Unmarshal([]byte(data), &decoded))
	require.Equal(t, pd.Name, decoded.Name)
	require.Len(t, decoded.Sources, 1)
}

func TestUIDs(t *testing.T) {
	t.Parallel()
	require.Equal(t, "my_policy", PolicyUID("My Policy"))
	require.Equal(t, "ampel_policy", PolicyUID(DefaultPolicyName))
	require.Equal(t, "ampel-My-Policy", EventUID("My Policy"))
	require.Equal(t, "ampel-a--b", EventUID("a  b"))
	require.Equal(t, "ampel-", EventUID(""))
}
