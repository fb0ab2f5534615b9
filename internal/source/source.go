// Package source resolves the raw text origins ipkit reads from: files,
// standard input, and literal command-line arguments.
package source

import (
	"bufio"
	"io"
	"iter"
	"os"

	"github.com/firefly-engineering/ipkit/internal/errors"
)

// StdinToken is the command-line token that selects standard input.
const StdinToken = "-"

// Kind identifies where a Source reads from.
type Kind int

const (
	KindFile Kind = iota
	KindStdin
	KindArg
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindStdin:
		return "stdin"
	case KindArg:
		return "arg"
	}
	return "unknown"
}

// Source is one raw text origin. It holds no open handles; those belong to
// the iteration started by Lines.
type Source struct {
	kind  Kind
	value string
}

// File returns a Source reading the file at path.
func File(path string) Source {
	return Source{kind: KindFile, value: path}
}

// Stdin returns a Source reading standard input.
func Stdin() Source {
	return Source{kind: KindStdin}
}

// Arg returns a Source yielding literal as its only line.
func Arg(literal string) Source {
	return Source{kind: KindArg, value: literal}
}

// Parse maps an --input token to a Source: "-" is stdin, anything else a path.
func Parse(token string) Source {
	if token == StdinToken {
		return Stdin()
	}
	return File(token)
}

// Kind returns the source kind.
func (s Source) Kind() Kind {
	return s.kind
}

func (s Source) String() string {
	switch s.kind {
	case KindStdin:
		return StdinToken
	default:
		return s.value
	}
}

// Lines yields the lines of the source without their line terminators.
// stdin is used for KindStdin sources. Open and read failures are yielded
// as an error, after which iteration stops.
func (s Source) Lines(stdin io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		switch s.kind {
		case KindArg:
			yield(s.value, nil)
		case KindStdin:
			scanLines(stdin, "failed to read standard input", yield)
		case KindFile:
			f, err := os.Open(s.value)
			if err != nil {
				yield("", errors.IOError("failed to open "+s.value, err))
				return
			}
			defer f.Close()
			scanLines(f, "failed to read "+s.value, yield)
		}
	}
}

func scanLines(r io.Reader, op string, yield func(string, error) bool) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if !yield(scanner.Text(), nil) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		yield("", errors.IOError(op, err))
	}
}

// CountStdin returns how many sources read standard input.
func CountStdin(sources []Source) int {
	n := 0
	for _, s := range sources {
		if s.kind == KindStdin {
			n++
		}
	}
	return n
}
