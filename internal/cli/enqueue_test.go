package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelift/croscan/internal/store"
)

func TestEnqueueInProcessRunsScan(t *testing.T) {
	dir := t.TempDir()
	fixture := writeFixture(t, dir)
	dbPath := filepath.Join(dir, "croscan.db")

	buf := &bytes.Buffer{}
	cmd := NewEnqueueCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"shop-1", "--db", dbPath, "--fixture", fixture})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "finished")
	assert.Contains(t, buf.String(), "scan-shop-1-")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	count, err := st.CountByOwner(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Greater(t, count, 0)
}

func TestEnqueueInProcessJSON(t *testing.T) {
	dir := t.TempDir()
	fixture := writeFixture(t, dir)
	dbPath := filepath.Join(dir, "croscan.db")

	buf := &bytes.Buffer{}
	cmd := NewEnqueueCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"shop-1", "--db", dbPath, "--fixture", fixture})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data["jobId"], "scan-shop-1-")

	status, ok := data["status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", status["state"])
}

func TestEnqueueInProcessRequiresDBAndFixture(t *testing.T) {
	cmd := NewEnqueueCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"shop-1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
