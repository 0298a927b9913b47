package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSample_Replays(t *testing.T) {
	first, err := execute(t, "sample", "--seed", "5", "--n", "8")
	require.NoError(t, err)
	second, err := execute(t, "sample", "--seed", "5", "--n", "8")
	require.NoError(t, err)
	other, err := execute(t, "sample", "--seed", "6", "--n", "8")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "shuffle:")
	assert.Contains(t, first, "normal:")
}

func TestSample_Rejects(t *testing.T) {
	_, err := execute(t, "sample", "--algorithm", "lcg")
	assert.Error(t, err)
	_, err = execute(t, "sample", "--n", "0")
	assert.Error(t, err)
}

func TestRun_Experiment(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "metrics.prom")
	out, err := execute(t, "run", "--config", filepath.Join("..", "..", "config", "testdata", "triangle.toml"),
		"--seed", "3", "--metrics-file", metrics)
	require.NoError(t, err)

	assert.Contains(t, out, "seed=3")
	assert.Contains(t, out, "generations=40")
	assert.Contains(t, out, "x = ")
	assert.NotContains(t, out, "violated")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "evocore_engine_generation"))
}

func TestRun_RequiresConfig(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "evocore version "+Version+" (build: "+BuildTime+")\n", out)
}
