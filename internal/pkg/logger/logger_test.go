package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(Config{Level: "DEBUG", Service: "lppm-portal", Output: &buf}))

	component := Component("import")
	component.Debug().Int("rows", 3).Msg("Import completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lppm-portal", entry["service"])
	assert.Equal(t, "import", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestConfigure_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(Config{Level: "warn", Output: &buf}))

	Info().Msg("hidden")
	assert.Empty(t, buf.String())
	Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigure_RejectsUnknownSettings(t *testing.T) {
	assert.Error(t, Configure(Config{Level: "loud"}))
	assert.Error(t, Configure(Config{Format: "xml"}))
}
