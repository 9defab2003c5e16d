package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/genlstats/internal/inspect"
	"github.com/danmuck/genlstats/internal/observability"
)

const (
	nodeName      = "statsctl"
	maxBodyBytes  = 1 << 20
	shutdownGrace = 5 * time.Second
)

// Inspector serves the TASKSTATS codec over HTTP.
type Inspector struct {
	Addr     string
	Appeared time.Time

	opts   inspect.Options
	router *gin.Engine
}

// Appear builds an Inspector with its middleware and routes registered.
func Appear(addr string, opts inspect.Options) *Inspector {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Instrument(nodeName, log.Logger))
	_ = r.SetTrustedProxies(nil)

	s := &Inspector{
		Addr:     addr,
		Appeared: time.Now(),
		opts:     opts,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Inspector) HTTPRouter() *gin.Engine {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Inspector) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr).Msg("inspector listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Info().Str("addr", s.Addr).Msg("inspector shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
