package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetupProductionWritesJSONAtInfo(t *testing.T) {
	var out bytes.Buffer
	log := setup(&out, false)

	require.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Debug().Msg("hidden")
	require.Zero(t, out.Len())

	log.Info().Str("component", "test").Msg("visible")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "visible", entry["message"])
	require.Equal(t, "test", entry["component"])
	require.Contains(t, entry, "time")
}

func TestSetupDevEnablesDebug(t *testing.T) {
	var out bytes.Buffer
	log := setup(&out, true)

	require.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Debug().Msg("debug line")
	require.Contains(t, out.String(), "debug line")
}
