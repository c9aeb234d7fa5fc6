package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	t.Run("json at info level", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWriter(&buf, false, "json")

		log.Debug().Msg("hidden")
		log.Info().Str("language", "hi").Msg("shown")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "shown", line["message"])
		require.Equal(t, "hi", line["language"])
		require.Equal(t, "info", line["level"])
	})

	t.Run("console at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWriter(&buf, true, "console")

		log.Debug().Msg("visible")
		require.Contains(t, buf.String(), "visible")
		require.Contains(t, buf.String(), "DBG")
	})
}
