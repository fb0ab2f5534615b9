// Package testutil provides test fixtures and utilities.
//
// This package contains embedded TOML fixtures and a TestEnv that swaps
// the default app for one backed by a mock file system and executor.
//
// # Fixtures
//
// TOML fixtures are embedded using go:embed:
//
//	fixtures/groups.toml          // raw, file and command groups
//	fixtures/empty_groups.toml    // groups = []
//	fixtures/no_groups.toml       // no groups key
//	fixtures/invalid_groups.toml  // fails validation
//
// # Usage in Tests
//
//	func TestGroup(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    defer env.Cleanup()
//
//	    // run commands with "-c", env.ConfigPath
//	    if env.Executor.CallCount(testutil.CloudCommand) > 1 {
//	        t.Error("group command ran more than once")
//	    }
//	}
package testutil
