package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_FileCarriesAppName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(AppConfig{Name: "travel-agency-test", LogPath: dir})
	require.NoError(t, err)
	logger.Info("Booking created", zap.Int64("booking_id", 9))
	_ = logger.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, "travel-agency-test.log"))
	require.NoError(t, err)
	line := string(raw)
	assert.Contains(t, line, `"app":"travel-agency-test"`)
	assert.Contains(t, line, `"booking_id":9`)
	assert.Contains(t, line, `"timestamp"`)
}

func TestInitLogger_DefaultName(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger(AppConfig{LogPath: dir, Debug: true})
	require.NoError(t, err)
	logger.Debug("Cache miss")
	_ = logger.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, "travel-agency.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"app":"travel-agency"`, "debug still writes JSON to the file")
}
