package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_WritesConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(".", configFileName))
	assert.NoError(t, err)
}

func TestInitCmd_RefusesToOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile(configFileName, []byte("version: 1\n"), 0o644))

	cmd := newInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
