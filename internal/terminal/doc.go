// Package terminal provides the interactive secdash command-line client.
//
// It wires configuration, local identity storage, the API account service,
// and an interactive REPL that launches simulated-terminal workflows:
// signup, login, and profile management. Each workflow runs as a session
// whose transcript lines are rendered to the terminal as they are emitted.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL, and runFlow for details.
package terminal
