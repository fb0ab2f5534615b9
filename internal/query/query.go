// Package query evaluates boolean filter expressions over addresses and
// networks.
//
// A query is an expr-lang expression over these placeholders:
//
//	ip_version  4 or 6
//	type        "addr" or "net"
//	prefix      prefix length; a bare address has the full length
//	group       first matching group name, "" if none
//	groups      every matching group name
//	hosts       number of addresses covered
//
// Only the placeholders a query mentions are computed, so a query that
// never names a group does not need a configuration.
package query

import (
	"context"
	"math"
	"net/netip"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/firefly-engineering/ipkit/internal/classify"
	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/logging"
	"github.com/firefly-engineering/ipkit/internal/network"
)

const (
	TypeAddr = "addr"
	TypeNet  = "net"
)

// env carries the placeholder values of one evaluation. Hosts is left
// untyped since it may hold an int or a float64.
type env struct {
	IPVersion int      `expr:"ip_version"`
	Type      string   `expr:"type"`
	Prefix    int      `expr:"prefix"`
	Group     string   `expr:"group"`
	Groups    []string `expr:"groups"`
	Hosts     any      `expr:"hosts"`
}

// Query is a compiled filter expression.
type Query struct {
	text      string
	program   *vm.Program
	requested []Placeholder
	cfg       *config.Configuration
}

// Compile parses and type-checks text. cfg may be nil; group placeholders
// then fail when evaluated.
func Compile(text string, cfg *config.Configuration) (*Query, error) {
	program, err := expr.Compile(text,
		expr.Env(env{}),
		expr.AsBool(),
		expr.DisableBuiltin("type"),
	)
	if err != nil {
		return nil, errors.ExpressionError("invalid query", err)
	}

	q := &Query{
		text:      text,
		program:   program,
		requested: Requested(text),
		cfg:       cfg,
	}
	logging.Debug("compiled query", "query", text, "placeholders", q.requested)
	return q, nil
}

func (q *Query) String() string {
	return q.text
}

// Requested returns the placeholders the query references.
func (q *Query) Requested() []Placeholder {
	return q.requested
}

// Match evaluates the query against v.
func (q *Query) Match(ctx context.Context, v network.AddrOrNet) (bool, error) {
	var e env
	for _, p := range q.requested {
		if err := q.resolve(ctx, p, v, &e); err != nil {
			return false, err
		}
	}

	out, err := expr.Run(q.program, e)
	if err != nil {
		return false, errors.ExpressionError("failed to evaluate query", err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, errors.ExpressionError("query did not evaluate to a boolean", nil)
	}
	return matched, nil
}

func (q *Query) resolve(ctx context.Context, p Placeholder, v network.AddrOrNet, e *env) error {
	var err error
	switch p {
	case IPVersion:
		e.IPVersion = network.Version(v.Addr())
	case Type:
		e.Type = TypeAddr
		if v.IsNet() {
			e.Type = TypeNet
		}
	case Prefix:
		e.Prefix = v.Prefix().Bits()
	case Group:
		e.Group, _, err = classify.First(ctx, v, q.cfg)
	case Groups:
		e.Groups, err = classify.All(ctx, v, q.cfg)
	case Hosts:
		e.Hosts = HostCount(v.Prefix())
	}
	return err
}

// HostCount returns the number of addresses in p as an int, or as a
// float64 power of two when it would not fit.
func HostCount(p netip.Prefix) any {
	bits := network.HostBits(p)
	if bits < 63 {
		return int(1) << bits
	}
	return math.Ldexp(1, bits)
}
