package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceLogger tags the configured global logger with the service name and
// listen address, installs the result as log.Logger and returns it. Level and
// output stay whatever logging.Configure chose.
func ServiceLogger(app, addr string) zerolog.Logger {
	logger := log.Logger.With().Str("app", app).Str("addr", addr).Logger()
	log.Logger = logger
	return logger
}
