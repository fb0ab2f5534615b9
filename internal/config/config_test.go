package config

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/system"
)

func parse(t *testing.T, doc string) (*Configuration, error) {
	t.Helper()
	return Parse([]byte(doc), "/etc/ipkit/ipkit.toml", system.NewMockFS(), system.NewMockExecutor())
}

func TestParseGroups(t *testing.T) {
	cfg, err := parse(t, `
[[groups]]
name = "internal"
nets = ["10.0.0.0/8", "192.168.1.1"]

[[groups]]
name = "office"
file = "office.txt"

[[groups]]
name = "cloud"
command = "cat ranges"
shell = "bash --noprofile"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !cfg.HasGroups() {
		t.Error("HasGroups() = false, want true")
	}
	if len(cfg.Groups) != 3 {
		t.Fatalf("len(Groups) = %d, want 3", len(cfg.Groups))
	}

	wantKinds := []SourceKind{KindRaw, KindFile, KindCommand}
	for i, g := range cfg.Groups {
		if g.Source == nil {
			t.Fatalf("group %q has no source", g.Name)
		}
		if g.Source.Kind() != wantKinds[i] {
			t.Errorf("group %q kind = %v, want %v", g.Name, g.Source.Kind(), wantKinds[i])
		}
	}

	if !cfg.Groups[0].Source.Resolved() {
		t.Error("raw group should be resolved at load")
	}
	if cfg.Groups[1].Source.Resolved() {
		t.Error("file group should not be resolved at load")
	}
	if got := cfg.Groups[1].Source.path; got != "/etc/ipkit/office.txt" {
		t.Errorf("file path = %q, want /etc/ipkit/office.txt", got)
	}
	if got := strings.Join(cfg.Groups[2].Source.shell, " "); got != "bash --noprofile" {
		t.Errorf("shell = %q, want %q", got, "bash --noprofile")
	}
}

func TestParseNoGroups(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantGroups bool
	}{
		{"empty document", "", false},
		{"empty list", "groups = []", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.doc)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.HasGroups() != tt.wantGroups {
				t.Errorf("HasGroups() = %v, want %v", cfg.HasGroups(), tt.wantGroups)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode int
	}{
		{"syntax", "[[groups]\nname=", errors.ExitConfigError},
		{"missing name", "[[groups]]\nnets = []", errors.ExitConfigError},
		{"no source", "[[groups]]\nname = \"a\"", errors.ExitConfigError},
		{"two sources", "[[groups]]\nname = \"a\"\nnets = [\"10.0.0.0/8\"]\nfile = \"x\"", errors.ExitConfigError},
		{"shell without command", "[[groups]]\nname = \"a\"\nfile = \"x\"\nshell = \"bash\"", errors.ExitConfigError},
		{"bad shell quoting", "[[groups]]\nname = \"a\"\ncommand = \"x\"\nshell = \"bash '\"", errors.ExitConfigError},
		{"bad net", "[[groups]]\nname = \"a\"\nnets = [\"10.0.0.300/8\"]", errors.ExitParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.doc)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if got := errors.GetExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestParseBadNetMessage(t *testing.T) {
	_, err := parse(t, "[[groups]]\nname = \"a\"\nnets = [\"nope\"]")
	if err == nil {
		t.Fatal("Parse() should fail")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q should name the offending text", err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/srv/ipkit.toml", []byte("[[groups]]\nname = \"a\"\nnets = [\"10.0.0.0/8\"]\n"))

	cfg, err := Load("/srv/ipkit.toml", fsys, system.NewMockExecutor())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != "/srv/ipkit.toml" {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if len(cfg.Groups) != 1 {
		t.Errorf("len(Groups) = %d, want 1", len(cfg.Groups))
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/ipkit.toml", system.NewMockFS(), system.NewMockExecutor())
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit path")
	}
	if got := errors.GetExitCode(err); got != errors.ExitIOError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitIOError)
	}
}

func TestLoadSearchEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvConfigPath, path)

	fsys := system.NewMockFS()
	fsys.AddFile(path, []byte("groups = []"))

	cfg, err := Load("", fsys, system.NewMockExecutor())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil || cfg.Path() != path {
		t.Fatalf("Load() = %+v, want configuration from %s", cfg, path)
	}
}

func TestLoadNothingFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("", system.NewMockFS(), system.NewMockExecutor())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("Load() = %+v, want nil", cfg)
	}
}

func TestLoadSearchEnvMissing(t *testing.T) {
	t.Setenv(EnvConfigPath, "/nonexistent/custom.toml")

	fsys := system.NewMockFS()
	fsys.AddFile(DefaultFileName, []byte("groups = []"))

	_, err := Load("", fsys, system.NewMockExecutor())
	if got := errors.GetExitCode(err); got != errors.ExitIOError {
		t.Errorf("exit code = %d, want %d (%v)", got, errors.ExitIOError, err)
	}
}

func TestSearchPathsOrder(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/env.toml")

	paths := SearchPaths()
	if paths[0] != DefaultFileName {
		t.Errorf("first path = %q, want %q", paths[0], DefaultFileName)
	}
	for _, p := range paths {
		if p == "/tmp/env.toml" {
			t.Error("the environment override is not a search path")
		}
	}
	if last := paths[len(paths)-1]; last != filepath.Join(DefaultSystemDir, DefaultFileName) {
		t.Errorf("last path = %q", last)
	}
}

func TestGroupFilePaths(t *testing.T) {
	root := t.TempDir()
	lists := filepath.Join(root, "lists")
	confDir := filepath.Join(root, "conf")
	for _, dir := range []string{lists, confDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	target := filepath.Join(lists, "office.txt")
	if err := os.WriteFile(target, []byte("203.0.113.0/24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(confDir, "office.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tests := []struct {
		name string
		file string
	}{
		{"symlinked file", "office.txt"},
		{"parent directory", "../lists/office.txt"},
		{"absolute", target},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf("[[groups]]\nname = \"office\"\nfile = %q\n", tt.file)
			cfg, err := Parse([]byte(doc), filepath.Join(confDir, DefaultFileName), system.DefaultFS(), system.NewMockExecutor())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			nets, err := cfg.Groups[0].Source.Resolve(context.Background())
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(nets) != 1 || nets[0] != netip.MustParsePrefix("203.0.113.0/24") {
				t.Errorf("Resolve() = %v", nets)
			}
		})
	}
}
