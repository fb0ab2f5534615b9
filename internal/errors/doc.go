// Package errors provides typed errors with exit codes for ipkit.
//
// # Error Types
//
// IPKitError is the base error type that wraps an error with an exit code:
//
//	type IPKitError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0 // Success
//	ExitGeneralError    = 1 // General/unknown errors
//	ExitParseError      = 2 // Malformed address or network text
//	ExitIOError         = 3 // File, stdin or command failure
//	ExitConfigError     = 4 // Missing or invalid configuration
//	ExitExpressionError = 5 // Filter expression failure
//	ExitDomainError     = 6 // Invalid CIDR arithmetic request
//	ExitNoGroupFound    = 7 // group --exit-no-match miss
//
// # Error Constructors
//
//	errors.ParseError("10.0.0.300", err)
//	errors.IOError("failed to open input", err)
//	errors.ConfigError("invalid configuration", err)
//	errors.DomainError("prefix is shorter than original subnet")
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
