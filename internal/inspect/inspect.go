// Package inspect turns generic netlink TASKSTATS payloads into printable
// views and builds request payloads from flags or JSON.
package inspect

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/genlstats/internal/observability"
	"github.com/danmuck/genlstats/internal/taskstats"
)

// Kind selects which envelope a payload is decoded as.
type Kind string

const (
	KindRequest Kind = "request"
	KindEvent   Kind = "event"
)

// ParseKind validates a kind name.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindRequest, KindEvent:
		return k, nil
	default:
		return "", fmt.Errorf("inspect: unknown payload kind %q: want request or event", raw)
	}
}

// Attr is one decoded attribute.
type Attr struct {
	Type  string     `json:"type" yaml:"type"`
	Kind  uint16     `json:"kind" yaml:"kind"`
	Value any        `json:"value,omitempty" yaml:"value,omitempty"`
	Stats *StatsView `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// StatsView is a Stats record with its command name as text.
type StatsView struct {
	Comm            string `json:"comm" yaml:"comm"`
	taskstats.Stats `yaml:",inline"`
}

// View is one decoded payload.
type View struct {
	Family   string   `json:"family" yaml:"family"`
	FamilyID *uint16  `json:"family_id,omitempty" yaml:"family_id,omitempty"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Command  string   `json:"command" yaml:"command"`
	Version  uint8    `json:"version" yaml:"version"`
	Attrs    []Attr   `json:"attrs" yaml:"attrs"`
	Reports  []Report `json:"reports,omitempty" yaml:"reports,omitempty"`
}

// Report is a grouped event record.
type Report struct {
	Scope string    `json:"scope" yaml:"scope"`
	ID    int32     `json:"id" yaml:"id"`
	Stats StatsView `json:"stats" yaml:"stats"`
}

// Options tune decoding.
type Options struct {
	// FamilyID is patched into decoded envelopes when non-zero.
	FamilyID uint16
}

// DecodeHex decodes a hex payload, ignoring surrounding whitespace.
func DecodeHex(kind Kind, raw string, opts Options) (View, error) {
	b, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return View{}, errors.Wrap(err, "inspect: invalid hex payload")
	}
	return Decode(kind, b, opts)
}

// Decode decodes one generic netlink payload, generic header included.
func Decode(kind Kind, b []byte, opts Options) (View, error) {
	var (
		view View
		err  error
	)
	switch kind {
	case KindRequest:
		view, err = decodeRequest(b, opts)
	case KindEvent:
		view, err = decodeEvent(b, opts)
	default:
		err = fmt.Errorf("inspect: unknown payload kind %q", kind)
	}
	observability.RecordCodec(taskstats.FamilyName, observability.DirectionDecode, err)
	if err != nil {
		return View{}, err
	}
	for _, a := range view.Attrs {
		observability.RecordAttribute(view.Family, a.Type)
	}
	return view, nil
}

// DecodeAll decodes payloads concurrently with at most workers in flight.
// Results keep the order of payloads; the first failure is returned with its
// index.
func DecodeAll(ctx context.Context, kind Kind, payloads [][]byte, workers int, opts Options) ([]View, error) {
	views := make([]View, len(payloads))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range payloads {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := Decode(kind, p, opts)
			if err != nil {
				return errors.WithMessagef(err, "payload %d", i)
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func familyID(id uint16) *uint16 {
	if id == 0 {
		return nil
	}
	return &id
}

func decodeRequest(b []byte, opts Options) (View, error) {
	req, err := taskstats.UnmarshalRequest(b)
	if err != nil {
		return View{}, err
	}
	if opts.FamilyID != 0 {
		req.SetFamilyID(opts.FamilyID)
	}
	view := View{
		Family:   req.FamilyName(),
		FamilyID: familyID(req.FamilyID()),
		Kind:     KindRequest,
		Command:  req.Cmd.String(),
		Version:  req.Version(),
		Attrs:    make([]Attr, 0, len(req.Attrs)),
	}
	for _, a := range req.Attrs {
		view.Attrs = append(view.Attrs, commandAttr(a))
	}
	return view, nil
}

func decodeEvent(b []byte, opts Options) (View, error) {
	ev, err := taskstats.UnmarshalEvent(b)
	if err != nil {
		return View{}, err
	}
	if opts.FamilyID != 0 {
		ev.SetFamilyID(opts.FamilyID)
	}
	reports, err := taskstats.Reports(ev.Attrs)
	if err != nil {
		return View{}, err
	}
	view := View{
		Family:   ev.FamilyName(),
		FamilyID: familyID(ev.FamilyID()),
		Kind:     KindEvent,
		Command:  ev.Cmd.String(),
		Version:  ev.Version(),
		Attrs:    make([]Attr, 0, len(ev.Attrs)),
	}
	for _, a := range ev.Attrs {
		view.Attrs = append(view.Attrs, eventAttr(a))
	}
	for _, r := range reports {
		view.Reports = append(view.Reports, Report{Scope: r.Scope.String(), ID: r.ID, Stats: statsView(r.Stats)})
	}
	return view, nil
}

func statsView(s taskstats.Stats) StatsView {
	return StatsView{Comm: s.Comm(), Stats: s}
}

func commandAttr(a taskstats.CommandAttr) Attr {
	out := Attr{Kind: a.Kind()}
	switch v := a.(type) {
	case taskstats.CmdPID:
		out.Type, out.Value = "Pid", uint32(v)
	case taskstats.CmdTGID:
		out.Type, out.Value = "TGid", uint32(v)
	case taskstats.CmdRegisterCPUMask:
		out.Type, out.Value = "RegisterCPUMask", string(v)
	case taskstats.CmdDeregisterCPUMask:
		out.Type, out.Value = "DeregisterCPUMask", string(v)
	}
	return out
}

func eventAttr(a taskstats.EventAttr) Attr {
	out := Attr{Kind: a.Kind()}
	switch v := a.(type) {
	case taskstats.EventPID:
		out.Type, out.Value = "Pid", int32(v)
	case taskstats.EventTGID:
		out.Type, out.Value = "TGid", int32(v)
	case taskstats.EventStats:
		sv := statsView(v.Stats)
		out.Type, out.Stats = "Stats", &sv
	case taskstats.EventAggrPID:
		out.Type = "AggrPid"
	case taskstats.EventAggrTGID:
		out.Type = "AggrTGid"
	case taskstats.EventNull:
		out.Type = "Null"
	}
	return out
}
