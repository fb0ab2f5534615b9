// Package app provides the application context for ipkit.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS       system.FileSystem      // configuration and group files
//	    Executor system.CommandExecutor // group commands
//	    Config   *config.Configuration  // optional preloaded configuration
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(mockFS),
//	    app.WithExecutor(mockExec),
//	)
//
// # Available Options
//
//	WithFS(fs)          // Custom file system
//	WithExecutor(exec)  // Custom command executor
//	WithConfig(cfg)     // Preloaded configuration
package app
