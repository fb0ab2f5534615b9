package config

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"os/exec"
	"strings"
	"sync"
	"unicode/utf8"

	"go4.org/netipx"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/logging"
	"github.com/firefly-engineering/ipkit/internal/network"
	"github.com/firefly-engineering/ipkit/internal/system"
)

// SourceKind is how a group's networks were declared.
type SourceKind int

const (
	KindRaw SourceKind = iota
	KindFile
	KindCommand
)

func (k SourceKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindCommand:
		return "command"
	default:
		return "raw"
	}
}

// DefaultShell runs group commands when neither the group nor $SHELL
// names one.
const DefaultShell = "sh"

// GroupSource yields a group's networks. File and command sources are
// resolved at most once; the first successful result is reused for the
// rest of the run. A failed resolution leaves the source unresolved.
type GroupSource struct {
	kind    SourceKind
	path    string
	command string
	shell   []string

	fs   system.FileSystem
	exec system.CommandExecutor

	mu       sync.Mutex
	resolved bool
	nets     []netip.Prefix
	set      *netipx.IPSet
}

// NewRawSource returns an already resolved source over nets.
func NewRawSource(nets []netip.Prefix) (*GroupSource, error) {
	s := &GroupSource{kind: KindRaw}
	if err := s.store(nets); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFileSource returns a source that reads one network per line from path.
func NewFileSource(path string, fsys system.FileSystem) *GroupSource {
	return &GroupSource{kind: KindFile, path: path, fs: fsys}
}

// NewCommandSource returns a source that runs command through a shell and
// reads one network per line of its output. A nil shell selects $SHELL,
// falling back to DefaultShell.
func NewCommandSource(command string, shell []string, executor system.CommandExecutor) *GroupSource {
	return &GroupSource{kind: KindCommand, command: command, shell: shell, exec: executor}
}

func (s *GroupSource) Kind() SourceKind {
	return s.kind
}

// Resolved reports whether the networks are already known.
func (s *GroupSource) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// Resolve returns the group's networks, reading the file or running the
// command on first use.
func (s *GroupSource) Resolve(ctx context.Context) ([]netip.Prefix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved {
		return s.nets, nil
	}

	var (
		nets []netip.Prefix
		err  error
	)
	switch s.kind {
	case KindFile:
		nets, err = s.readFile()
	case KindCommand:
		nets, err = s.runCommand(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store(nets); err != nil {
		return nil, err
	}
	logging.Debug("resolved group source", "kind", s.kind, "nets", len(nets))
	return s.nets, nil
}

// Contains reports whether any single network of the group contains v.
func (s *GroupSource) Contains(ctx context.Context, v network.AddrOrNet) (bool, error) {
	nets, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}

	if !v.IsNet() {
		return s.set.Contains(v.Addr()), nil
	}
	for _, n := range nets {
		if network.Contains(n, v) {
			return true, nil
		}
	}
	return false, nil
}

// store must be called with mu held or before the source is shared.
func (s *GroupSource) store(nets []netip.Prefix) error {
	var b netipx.IPSetBuilder
	for _, n := range nets {
		b.AddPrefix(n.Masked())
	}
	set, err := b.IPSet()
	if err != nil {
		return errors.ConfigError("invalid group networks", err)
	}
	s.nets = nets
	s.set = set
	s.resolved = true
	return nil
}

func (s *GroupSource) readFile() ([]netip.Prefix, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read group file %s", s.path), err)
	}
	return parseNets(string(data), "invalid group file content")
}

func (s *GroupSource) runCommand(ctx context.Context) ([]netip.Prefix, error) {
	argv := s.shellArgv()
	args := append(argv[1:len(argv):len(argv)], "-c", s.command)

	logging.Debug("running group command", "shell", argv[0], "command", s.command)
	out, err := s.exec.Output(ctx, argv[0], args...)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.IOError("group command failure", err)
		}
		logging.Debug("group command exited with non-zero status", "command", s.command, "status", exitErr.ExitCode(), "error", err)
	}
	if !utf8.Valid(out) {
		return nil, errors.IOError("group command failure", fmt.Errorf("output is not valid UTF-8"))
	}
	return parseNets(string(out), "invalid group command output")
}

func (s *GroupSource) shellArgv() []string {
	if len(s.shell) > 0 {
		return s.shell
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return []string{sh}
	}
	return []string{DefaultShell}
}

func parseNets(data, what string) ([]netip.Prefix, error) {
	var nets []netip.Prefix
	for line := range strings.Lines(data) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := network.ParseAutoNet(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, errors.ParseError(line, err))
		}
		nets = append(nets, n.Prefix)
	}
	return nets, nil
}
