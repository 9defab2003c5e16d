package inspect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/danmuck/genlstats/internal/observability"
	"github.com/danmuck/genlstats/internal/protocol/genl"
	"github.com/danmuck/genlstats/internal/taskstats"
)

// RequestSpec selects the single attribute of a GET request. Exactly one
// field must be set; an explicit id of 0 counts as set.
type RequestSpec struct {
	PID        *uint32 `json:"pid,omitempty"`
	TGID       *uint32 `json:"tgid,omitempty"`
	Register   string  `json:"register,omitempty"`
	Deregister string  `json:"deregister,omitempty"`
}

// Build returns the request described by s.
func (s RequestSpec) Build() (*taskstats.Request, error) {
	var (
		set []string
		req *taskstats.Request
	)
	if s.PID != nil {
		set, req = append(set, "pid"), taskstats.NewPIDRequest(*s.PID)
	}
	if s.TGID != nil {
		set, req = append(set, "tgid"), taskstats.NewTGIDRequest(*s.TGID)
	}
	if s.Register != "" {
		set, req = append(set, "register"), taskstats.NewRegisterRequest(s.Register)
	}
	if s.Deregister != "" {
		set, req = append(set, "deregister"), taskstats.NewDeregisterRequest(s.Deregister)
	}
	switch len(set) {
	case 0:
		return nil, fmt.Errorf("inspect: request needs one of pid, tgid, register, deregister")
	case 1:
		return req, nil
	default:
		return nil, fmt.Errorf("inspect: request sets %s; want exactly one", strings.Join(set, ", "))
	}
}

// EncodeHex builds the request for s and returns its generic netlink payload
// as hex.
func EncodeHex(s RequestSpec) (string, error) {
	req, err := s.Build()
	if err != nil {
		return "", err
	}
	b := genl.Marshal(req)
	observability.RecordCodec(req.FamilyName(), observability.DirectionEncode, nil)
	return hex.EncodeToString(b), nil
}
