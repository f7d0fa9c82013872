package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docexplore/internal/config"
)

func TestRunCommand(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	docs := []string{
		strings.Repeat("Revenue grew across regions and forecasts rose. ", 6),
		strings.Repeat("Tomatoes ripened in the greenhouse garden soil. ", 6),
	}
	for i, d := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(in, string(rune('a'+i))+".txt"), []byte(d), 0o644))
	}
	cfg := config.Default()
	cfg.Chunker.MaxChars = 150
	cfg.Output.Dir = out
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", cfgPath, "run", in})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "topics written to")
	assert.FileExists(t, filepath.Join(out, "docexplore.json"))
}

func TestRunCommand_RequiresDir(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})
	assert.Error(t, cmd.Execute())
}
