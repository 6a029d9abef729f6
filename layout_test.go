package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, ioutil.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestDefaultLayout(t *testing.T) {
	t.Parallel()

	require.NoError(t, defaultLayout.validate())
	assert.Equal(t, 4, defaultLayout.minTables())
	assert.Equal(t, 9, defaultLayout.columns(Downstream))
	assert.Equal(t, 7, defaultLayout.columns(Upstream))
}

func TestLoadLayout(t *testing.T) {
	t.Parallel()

	t.Run("partial override keeps defaults", func(t *testing.T) {
		t.Parallel()

		layout, err := loadLayout("testdata/layout.yaml")
		require.NoError(t, err)

		assert.Equal(t, "/cmconnectionstatus.html", layout.StatusPath)
		assert.Equal(t, 1, layout.Downstream.Table)
		assert.Equal(t, 2, layout.Upstream.Table)
		assert.Equal(t, defaultLayout.HeaderRows, layout.HeaderRows)
		assert.Equal(t, defaultLayout.Downstream.SNR, layout.Downstream.SNR)
		assert.Equal(t, 3, layout.minTables())
	})
	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		layout, err := loadLayout(writeLayout(t, ""))
		require.NoError(t, err)
		assert.Equal(t, defaultLayout, layout)
	})
	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := loadLayout(writeLayout(t, "downstream:\n  snr_column: 4\n"))
		assert.Error(t, err)
	})
	t.Run("negative column", func(t *testing.T) {
		t.Parallel()

		_, err := loadLayout(writeLayout(t, "upstream:\n  power: -1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upstream.power")
	})
	t.Run("shared table", func(t *testing.T) {
		t.Parallel()

		_, err := loadLayout(writeLayout(t, "upstream:\n  table: 2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "share table 2")
	})
	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
