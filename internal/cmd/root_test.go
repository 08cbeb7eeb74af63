// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carabiner-dev/evidence"
)

const testAttestation = "../../testdata/ampel.intoto.json"

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name     string
		args     func(dir string) []string
		mustErr  bool
		validate func(t *testing.T, dir, stdout, stderr string)
	}{
		{
			name: "to-file",
			args: func(dir string) []string {
				return []string{"-i", testAttestation, "-o", filepath.Join(dir, "evidence.json")}
			},
			validate: func(t *testing.T, dir, stdout, _ string) {
				t.Helper()
				require.Contains(t, stdout, "Successfully converted")
				data, err := os.ReadFile(filepath.Join(dir, "evidence.json"))
				require.NoError(t, err)
				ev := map[string]any{}
				require.NoError(t, json.Unmarshal(data, &ev))
				require.Equal(t, "failure", ev["status"])
			},
		},
		{
			name: "to-stdout",
			args: func(_ string) []string {
				return []string{"--input", testAttestation, "--output", "-"}
			},
			validate: func(t *testing.T, _, stdout, stderr string) {
				t.Helper()
				ev := map[string]any{}
				require.NoError(t, json.Unmarshal([]byte(stdout), &ev))
				require.EqualValues(t, 6007, ev["class_uid"])
				require.Contains(t, stderr, "Successfully converted")
			},
		},
		{
			name: "with-config",
			args: func(_ string) []string {
				return []string{"-i", testAttestation, "-o", "-", "--config", "testdata/config.yaml"}
			},
			validate: func(t *testing.T, _, stdout, _ string) {
				t.Helper()
				ev := map[string]any{}
				require.NoError(t, json.Unmarshal([]byte(stdout), &ev))
				meta, ok := ev["metadata"].(map[string]any)
				require.True(t, ok)
				require.Equal(t, "ampel", meta["log_provider"])
				require.Equal(t, map[string]any{
					"name": "ampel-ci", "vendor_name": "acme", "version": "v1.2.3",
				}, meta["product"])
			},
		},
		{
			name: "missing-input",
			args: func(dir string) []string {
				return []string{"-i", filepath.Join(dir, "nope.json"), "-o", filepath.Join(dir, "evidence.json")}
			},
			mustErr: true,
		},
		{
			name: "bad-config",
			args: func(_ string) []string {
				return []string{"-i", testAttestation, "-o", "-", "--config", "testdata/bad-config.yaml"}
			},
			mustErr: true,
		},
		{
			name: "bad-log-level",
			args: func(_ string) []string {
				return []string{"-i", testAttestation, "-o", "-", "--log-level", "loud"}
			},
			mustErr: true,
		},
		{
			name: "extra-args",
			args: func(_ string) []string {
				return []string{"some-file.json"}
			},
			mustErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			stdout, stderr, err := runCommand(t, tc.args(dir)...)
			if tc.mustErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.validate != nil {
				tc.validate(t, dir, stdout, stderr)
			}
		})
	}
}

func TestConvertCommandMalformed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "ampel.intoto.json")
	out := filepath.Join(dir, "evidence.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"dsseEnvelope": {"payload": "not base64!"}}`), 0o600))

	_, _, err := runCommand(t, "-i", in, "-o", out)
	require.ErrorIs(t, err, evidence.ErrMalformedInput)
	require.NoFileExists(t, out)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name    string
		opts    convertOptions
		mustErr bool
	}{
		{"ok", convertOptions{Input: testAttestation, Output: "evidence.json"}, false},
		{"no-input", convertOptions{Output: "evidence.json"}, true},
		{"no-output", convertOptions{Input: testAttestation}, true},
		{"missing-config", convertOptions{Input: testAttestation, Output: "-", ConfigFile: "testdata/nope.yaml"}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.opts.Validate()
			if tc.mustErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	conf, err := loadConfig("testdata/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "ampel-ci", conf.Product)
	require.Empty(t, conf.LogProvider)
	require.Len(t, conf.InitFunctions(), 4)

	_, err = loadConfig("testdata/bad-config.yaml")
	require.Error(t, err)

	require.Empty(t, (&fileConfig{}).InitFunctions())
}
