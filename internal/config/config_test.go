package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basic-video-processing/internal/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "atrium.avi", cfg.Input)
	assert.Equal(t, []JobConfig{
		{Transform: "grayscale", Output: "308339274_212235246_atrium_grayscale.avi"},
		{Transform: "black_and_white", Output: "308339274_212235246_atrium_black_and_white.avi"},
		{Transform: "sobel", Output: "308339274_212235246_atrium_sobel.avi"},
	}, cfg.Jobs)
}

func TestDefaultJobsWithDirectory(t *testing.T) {
	jobs := DefaultJobs("out", "clip")
	require.Len(t, jobs, 3)
	assert.Equal(t, filepath.Join("out", "clip_sobel.avi"), jobs[2].Output)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input: lobby.mp4
metrics_textfile: /tmp/videoproc.prom
debug: true
jobs:
  - transform: sobel
    output: lobby_edges.mp4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lobby.mp4", cfg.Input)
	assert.Equal(t, "/tmp/videoproc.prom", cfg.MetricsTextfile)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []core.Job{{Transform: "sobel", Output: "lobby_edges.mp4"}}, cfg.BatchJobs())
}

func TestLoadKeepsDefaultJobsWhenOmitted(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input: lobby.avi\n"))
	require.NoError(t, err)
	assert.Equal(t, "lobby.avi", cfg.Input)
	assert.Len(t, cfg.Jobs, 3)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed yaml", "jobs: [", "failed to parse config"},
		{"unknown transform", "jobs:\n  - transform: lanczos\n    output: a.avi\n", "unknown transform"},
		{"missing output", "jobs:\n  - transform: sobel\n", "output is required"},
		{"empty input", "input: ''\n", "input is required"},
		{"output overwrites input", "input: a.avi\njobs:\n  - transform: sobel\n    output: a.avi\n", "overwrites the input"},
		{"duplicate output", "jobs:\n  - transform: sobel\n    output: a.avi\n  - transform: grayscale\n    output: a.avi\n", "used twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestOnly(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Only("black_and_white"))
	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, "black_and_white", cfg.Jobs[0].Transform)

	assert.Error(t, Default().Only("lanczos"))
}
