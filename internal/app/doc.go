// Package app contains the application logic behind every entrypoint. It owns
// the model catalog, the configuration, the logger and the current session,
// and exposes the batch, interactive, watch and HTTP front ends on top of
// them, decoupled from any specific command-line parser.
package app
