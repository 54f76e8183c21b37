// Package cli provides the interactive TARDIS command-line client.
//
// It wires configuration, the SQLite-backed session storage, the REST API
// client and an interactive REPL. On start-up the persisted token is
// restored and checked against /users/me; a background watcher polls the
// gRPC health service and switches between online and offline mode.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
