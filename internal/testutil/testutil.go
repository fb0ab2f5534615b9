// Package testutil provides test utilities for command tests
package testutil

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/ipkit/internal/app"
	"github.com/firefly-engineering/ipkit/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T          *testing.T
	TmpDir     string
	ConfigPath string
	FS         *system.MockFS
	Executor   *system.MockExecutor
	App        *app.App
	cleanup    func()
}

// NewTestEnv creates a new test environment with a mock file system and
// executor. The groups fixture is installed at ConfigPath along with the
// group file and command it references.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	fs := system.NewMockFS()
	exec := system.NewMockExecutor()

	data, err := LoadFixture("groups.toml")
	if err != nil {
		t.Fatalf("Failed to load groups fixture: %v", err)
	}
	fs.AddFile(FixtureConfig, data)
	fs.AddFile(path.Join(path.Dir(FixtureConfig), OfficeFile), []byte(OfficeNets))
	exec.AddResponse(CloudCommand, []byte(CloudNets), nil)

	testApp := app.New(
		app.WithFS(fs),
		app.WithExecutor(exec),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:          t,
		TmpDir:     tmpDir,
		ConfigPath: FixtureConfig,
		FS:         fs,
		Executor:   exec,
		App:        testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// SetConfig replaces the configuration at ConfigPath.
func (e *TestEnv) SetConfig(doc string) {
	e.FS.AddFile(e.ConfigPath, []byte(doc))
}

// SetConfigFixture installs a named fixture at ConfigPath.
func (e *TestEnv) SetConfigFixture(name string) {
	e.T.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	e.FS.AddFile(e.ConfigPath, data)
}

// WriteInput writes an input file on disk and returns its path.
func (e *TestEnv) WriteInput(name, content string) string {
	e.T.Helper()

	p := filepath.Join(e.TmpDir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write input: %v", err)
	}
	return p
}
