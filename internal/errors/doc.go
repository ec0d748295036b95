// Package errors provides structured, coded errors for the hydrate tooling.
//
// The runtime packages (dom, hydrate, scheduler, component) never fail:
// a missing node is a creation, a call on a destroyed component is a no-op.
// Errors only exist at the edges, where configuration is loaded, markup is
// parsed and CLI input is validated.
//
// # Error Codes
//
// Each error has a unique code that maps to a registered template:
//   - H100-H199: configuration
//   - H200-H299: markup parsing
//   - H300-H399: command line input
//
// # Usage
//
//	err := errors.New("H101").
//	    WithDetail("log.level must be one of debug, info, warn, error").
//	    WithSuggestion(`Set "log": {"level": "info"} in hydrate.json`)
//
//	fmt.Println(err.FormatCompact())
//	// H101: Invalid configuration value - log.level must be one of ...
package errors
