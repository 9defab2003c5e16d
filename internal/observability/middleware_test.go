package observability

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestInstrumentLogsAndCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r := gin.New()
	r.Use(Instrument("test-node", logger))
	r.POST("/decode", func(c *gin.Context) {
		_ = c.Error(errors.New("short header"))
		c.Status(http.StatusUnprocessableEntity)
	})

	counter := httpRequests.WithLabelValues("test-node", http.MethodPost, "/decode", "422")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodPost, "/decode?kind=event", strings.NewReader("02"))
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("request counter delta = %v, want 1", got)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, want := range []string{`"level":"warn"`, `"kind":"event"`, `"error":"short header"`, `"route":"/decode"`, `"status":422`} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("first line missing %s: %s", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], `"route":"unmatched"`) || !strings.Contains(lines[1], `"status":404`) {
		t.Fatalf("unexpected unmatched route line: %s", lines[1])
	}
}
