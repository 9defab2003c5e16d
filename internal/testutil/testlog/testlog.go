package testlog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/genlstats/internal/logging"
)

// Start configures test logging and routes the global logger to t for the
// duration of the test.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	prev := log.Logger
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
	t.Cleanup(func() { log.Logger = prev })
	log.Info().Msg("test start")
}
