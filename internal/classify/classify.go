// Package classify finds the configured groups an address or network
// belongs to.
package classify

import (
	"context"
	"fmt"
	"iter"

	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/network"
)

// check fails unless cfg declares a groups list.
func check(cfg *config.Configuration) error {
	if cfg == nil {
		return errors.ErrConfigurationRequired
	}
	if !cfg.HasGroups() {
		return errors.ErrNoGroupsDefined
	}
	return nil
}

// Matching returns the names of the groups containing v, in declared
// order. A group's source is resolved only when the sequence reaches it,
// so stopping early leaves later groups untouched.
func Matching(ctx context.Context, v network.AddrOrNet, cfg *config.Configuration) (iter.Seq2[string, error], error) {
	if err := check(cfg); err != nil {
		return nil, err
	}

	return func(yield func(string, error) bool) {
		for _, g := range cfg.Groups {
			ok, err := g.Source.Contains(ctx, v)
			if err != nil {
				yield("", fmt.Errorf("group %q: %w", g.Name, err))
				return
			}
			if ok && !yield(g.Name, nil) {
				return
			}
		}
	}, nil
}

// First returns the first group containing v. found is false when no
// group matches.
func First(ctx context.Context, v network.AddrOrNet, cfg *config.Configuration) (name string, found bool, err error) {
	seq, err := Matching(ctx, v, cfg)
	if err != nil {
		return "", false, err
	}
	for name, err := range seq {
		if err != nil {
			return "", false, err
		}
		return name, true, nil
	}
	return "", false, nil
}

// All returns every group containing v.
func All(ctx context.Context, v network.AddrOrNet, cfg *config.Configuration) ([]string, error) {
	seq, err := Matching(ctx, v, cfg)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for name, err := range seq {
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
