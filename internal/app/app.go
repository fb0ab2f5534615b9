// Package app provides the application context for ipkit.
// It allows dependency injection for testing.
package app

import (
	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/logging"
	"github.com/firefly-engineering/ipkit/internal/system"
)

// App holds the application dependencies
type App struct {
	// FS reads configuration and group files
	FS system.FileSystem

	// Executor runs group commands
	Executor system.CommandExecutor

	// Config, when set, is used instead of loading a configuration file
	Config *config.Configuration
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithConfig sets a preloaded configuration
func WithConfig(cfg *config.Configuration) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// New creates a new App with the given options.
// Missing dependencies fall back to the system defaults.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}

	return app
}

// LoadConfig returns the preloaded configuration or loads one from path,
// searching the default locations when path is empty. The result is nil
// when no configuration exists.
func (a *App) LoadConfig(path string) (*config.Configuration, error) {
	if a.Config != nil {
		logging.Debug("using preloaded configuration", "path", a.Config.Path())
		return a.Config, nil
	}
	return config.Load(path, a.FS, a.Executor)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
