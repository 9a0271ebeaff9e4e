// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// resolves the configuration, builds the App and dispatches to the selected
// command.
package cli
