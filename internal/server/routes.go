package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/genlstats/internal/inspect"
	"github.com/danmuck/genlstats/internal/protocol"
)

func (s *Inspector) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": nodeName,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1/taskstats")
	v1.POST("/decode", s.handleDecode)
	v1.POST("/encode", s.handleEncode)
}

func (s *Inspector) handleDecode(c *gin.Context) {
	kind, err := inspect.ParseKind(c.DefaultQuery("kind", string(inspect.KindEvent)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	view, err := inspect.DecodeHex(kind, string(body), s.opts)
	if err != nil {
		status := http.StatusBadRequest
		if protocol.IsDecodeError(err) {
			status = http.StatusUnprocessableEntity
		}
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Inspector) handleEncode(c *gin.Context) {
	var spec inspect.RequestSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload, err := inspect.EncodeHex(spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": payload})
}
