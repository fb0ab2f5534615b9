package input

import (
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/logging"
	"github.com/firefly-engineering/ipkit/internal/source"
)

// Value is what an Input can hold: comparable for de-duplication and
// totally ordered by Compare for sorting.
type Value[T any] interface {
	comparable
	Compare(T) int
}

// Input is either lazy (sources not yet read) or materialized (every value
// parsed into memory). It only ever moves from lazy to materialized.
type Input[T Value[T]] struct {
	parse   func(string) (T, error)
	stdin   io.Reader
	sources []source.Source

	values       []T
	materialized bool
	consumed     bool
}

// New returns a lazy Input over sources. parse receives each trimmed,
// non-blank line; stdin backs any stdin source.
func New[T Value[T]](parse func(string) (T, error), stdin io.Reader, sources ...source.Source) *Input[T] {
	return &Input[T]{
		parse:   parse,
		stdin:   stdin,
		sources: sources,
	}
}

// FromValues returns a materialized Input holding values.
func FromValues[T Value[T]](values []T) *Input[T] {
	return &Input[T]{values: values, materialized: true}
}

// Materialized reports whether every value is held in memory.
func (in *Input[T]) Materialized() bool {
	return in.materialized
}

// Materialize reads and parses every source. The first I/O or parse error
// is returned and the sources count as consumed. It is a no-op on a
// materialized Input.
func (in *Input[T]) Materialize() error {
	if in.materialized {
		return nil
	}

	var values []T
	for v, err := range in.All() {
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	in.values = values
	in.sources = nil
	in.materialized = true
	logging.Debug("materialized input", "values", len(values))
	return nil
}

// Sort materializes the Input and sorts it in ascending order.
func (in *Input[T]) Sort() error {
	if err := in.Materialize(); err != nil {
		return err
	}
	slices.SortStableFunc(in.values, func(a, b T) int {
		return a.Compare(b)
	})
	return nil
}

// Unique materializes the Input and drops repeated values, keeping the
// first occurrence of each in place.
func (in *Input[T]) Unique() error {
	if err := in.Materialize(); err != nil {
		return err
	}
	seen := make(map[T]struct{}, len(in.values))
	kept := in.values[:0]
	for _, v := range in.values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		kept = append(kept, v)
	}
	clear(in.values[len(kept):])
	in.values = kept
	return nil
}

// Apply runs Unique and Sort as requested. Either order gives the same
// result since Unique keeps first occurrences and Sort is stable.
func (in *Input[T]) Apply(sort, unique bool) error {
	if unique {
		if err := in.Unique(); err != nil {
			return err
		}
	}
	if sort {
		if err := in.Sort(); err != nil {
			return err
		}
	}
	return nil
}

// All yields every value in order. For a lazy Input, blank lines are
// skipped, other lines are trimmed and parsed, and failures are yielded as
// errors tagged with the offending text. A lazy Input can be iterated once;
// later iterations yield errors.ErrInputConsumed.
func (in *Input[T]) All() iter.Seq2[T, error] {
	if in.materialized {
		return func(yield func(T, error) bool) {
			for _, v := range in.values {
				if !yield(v, nil) {
					return
				}
			}
		}
	}

	return func(yield func(T, error) bool) {
		var zero T
		if in.consumed {
			yield(zero, errors.ErrInputConsumed)
			return
		}
		in.consumed = true

		for _, src := range in.sources {
			for line, err := range src.Lines(in.stdin) {
				if err != nil {
					if !yield(zero, err) {
						return
					}
					continue
				}
				text := strings.TrimSpace(line)
				if text == "" {
					continue
				}
				v, err := in.parse(text)
				if err != nil {
					if !yield(zero, errors.ParseError(text, err)) {
						return
					}
					continue
				}
				if !yield(v, nil) {
					return
				}
			}
		}
	}
}
