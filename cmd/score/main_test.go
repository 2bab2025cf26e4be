package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	args := []string{
		"-config", filepath.Join(t.TempDir(), "none.yaml"),
		"-model_dir", filepath.Join("..", "..", "artifacts"),
		"-card", "4111 1111 1111 1111",
		"-date", "2025-03-15",
		"-hour", "14",
		"-category", "Grocery",
		"-gender", "Female",
	}
	return append(args, extra...)
}

func TestRunLegitimate(t *testing.T) {
	var out bytes.Buffer
	code, err := run(scoreArgs(t, "-amount", "42"), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "verdict=LEGITIMATE")
	assert.Contains(t, out.String(), "category_code")
}

func TestRunFraudulent(t *testing.T) {
	var out bytes.Buffer
	code, err := run(scoreArgs(t, "-amount", "5000"), &out)
	require.NoError(t, err)

	assert.Equal(t, exitFraud, code)
	assert.Contains(t, out.String(), "verdict=FRAUDULENT")
}

func TestRunRequiresCardAndAmount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no amount", scoreArgs(t)},
		{"zero amount", scoreArgs(t, "-amount", "0")},
		{"no card", scoreArgs(t, "-amount", "42", "-card", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := run(tt.args, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing required")
			assert.Empty(t, out.String())
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := run(scoreArgs(t, "-amount", "42", "-category", "Casino"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transaction")
}

func TestRunMissingArtifacts(t *testing.T) {
	_, err := run(scoreArgs(t, "-amount", "42", "-model_dir", t.TempDir()), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load artifacts")
}

func TestRunUnknownFlag(t *testing.T) {
	_, err := run([]string{"-nope"}, &bytes.Buffer{})
	assert.Error(t, err)
}
