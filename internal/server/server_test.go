package server

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/genlstats/internal/inspect"
	"github.com/danmuck/genlstats/internal/protocol/genl"
	"github.com/danmuck/genlstats/internal/taskstats"
	"github.com/danmuck/genlstats/internal/testutil/testlog"
)

func serve(t *testing.T, s *Inspector, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return rr, out
}

func TestHealth(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{})

	rr, body := serve(t, s, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body["status"] != "ok" || body["service"] != nodeName {
		t.Fatalf("unexpected health body: %#v", body)
	}
	log.Info().Int("status", rr.Code).Msg("server/http: GET /health")
}

func TestDecodeRequestPayload(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{FamilyID: 27})
	payload, err := inspect.EncodeHex(inspect.RequestSpec{PID: ptr[uint32](1234)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rr, body := serve(t, s, http.MethodPost, "/v1/taskstats/decode?kind=request", payload+"\n")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%v", rr.Code, body)
	}
	if body["family"] != taskstats.FamilyName || body["command"] != "GET" {
		t.Fatalf("unexpected envelope: %#v", body)
	}
	if body["family_id"] != float64(27) {
		t.Fatalf("expected family_id 27, got %v", body["family_id"])
	}
	attrs, _ := body["attrs"].([]any)
	if len(attrs) != 1 {
		t.Fatalf("expected one attribute, got %#v", body["attrs"])
	}
	attr := attrs[0].(map[string]any)
	if attr["type"] != "Pid" || attr["value"] != float64(1234) {
		t.Fatalf("unexpected attribute: %#v", attr)
	}
	log.Info().Str("payload", payload).Msg("server/http: decoded request")
}

func TestDecodeEventReports(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{})

	var stats taskstats.Stats
	stats.Version = 9
	stats.AcPID = 42
	stats.SetComm("worker")
	ev := &taskstats.Event{
		Cmd:   taskstats.EventNew,
		Attrs: []taskstats.EventAttr{taskstats.EventAggrPID{}, taskstats.EventPID(42), taskstats.EventStats{Stats: stats}},
	}
	payload := hex.EncodeToString(genl.Marshal(ev))

	rr, body := serve(t, s, http.MethodPost, "/v1/taskstats/decode", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%v", rr.Code, body)
	}
	if _, ok := body["family_id"]; ok {
		t.Fatalf("expected unresolved family id to be omitted: %#v", body)
	}
	reports, _ := body["reports"].([]any)
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %#v", body["reports"])
	}
	report := reports[0].(map[string]any)
	if report["scope"] != "pid" || report["id"] != float64(42) {
		t.Fatalf("unexpected report: %#v", report)
	}
	if comm := report["stats"].(map[string]any)["comm"]; comm != "worker" {
		t.Fatalf("expected comm worker, got %v", comm)
	}
	log.Info().Int("reports", len(reports)).Msg("server/http: decoded event")
}

func TestDecodeRejections(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{})

	cases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "bad kind", target: "/v1/taskstats/decode?kind=reply", body: "01010000", status: http.StatusBadRequest},
		{name: "bad hex", target: "/v1/taskstats/decode?kind=request", body: "zz", status: http.StatusBadRequest},
		{name: "unknown command", target: "/v1/taskstats/decode?kind=request", body: "07010000", status: http.StatusUnprocessableEntity},
		{name: "truncated header", target: "/v1/taskstats/decode?kind=event", body: "0201", status: http.StatusUnprocessableEntity},
		{name: "truncated attribute", target: "/v1/taskstats/decode?kind=request", body: "0101000008000100", status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := serve(t, s, http.MethodPost, tc.target, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected status %d, got %d body=%v", tc.status, rr.Code, body)
			}
			if msg, _ := body["error"].(string); msg == "" {
				t.Fatalf("expected error message, got %#v", body)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{})

	rr, body := serve(t, s, http.MethodPost, "/v1/taskstats/encode", `{"register":"0-3"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%v", rr.Code, body)
	}
	payload, _ := body["payload"].(string)
	b, err := hex.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not hex: %v", err)
	}
	req, err := taskstats.UnmarshalRequest(b)
	if err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if len(req.Attrs) != 1 || req.Attrs[0] != taskstats.CmdRegisterCPUMask("0-3") {
		t.Fatalf("unexpected attributes: %v", req.Attrs)
	}

	rr, body = serve(t, s, http.MethodPost, "/v1/taskstats/encode", `{"pid":1,"tgid":2}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for two attributes, got %d body=%v", rr.Code, body)
	}
	rr, body = serve(t, s, http.MethodPost, "/v1/taskstats/encode", `{"pid":0}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected explicit pid 0 to encode, got %d body=%v", rr.Code, body)
	}
	rr, body = serve(t, s, http.MethodPost, "/v1/taskstats/encode", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty request, got %d body=%v", rr.Code, body)
	}
	rr, _ = serve(t, s, http.MethodPost, "/v1/taskstats/encode", `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad json, got %d", rr.Code)
	}
	log.Info().Str("payload", payload).Msg("server/http: encoded register request")
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	testlog.Start(t)
	s := Appear("127.0.0.1:0", inspect.Options{})

	// well-formed request larger than the body limit
	body := "010100000800010001000000" + strings.Repeat("0800010002000000", maxBodyBytes/16)
	if len(body) <= maxBodyBytes {
		t.Fatalf("body of %d bytes does not exceed the limit", len(body))
	}

	rr, resp := serve(t, s, http.MethodPost, "/v1/taskstats/decode?kind=request", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d body=%v", rr.Code, resp)
	}
	if msg, _ := resp["error"].(string); msg == "" {
		t.Fatalf("expected error message, got %#v", resp)
	}
	log.Info().Int("body_bytes", len(body)).Msg("server/http: oversized decode rejected")
}

func ptr[T any](v T) *T { return &v }
