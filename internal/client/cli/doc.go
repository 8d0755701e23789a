// Package cli provides the interactive DessertAI terminal client.
//
// It wires configuration, the local session store, the remote API gateway
// and the screens behind a read-eval-print loop:
//   - home grid, free-text search, category slider, back/forward history
//   - recipe detail with favorites, ratings and comments
//   - favorites and recent searches for a signed-in user
//   - login, signup, password reset and the contact form
//
// Every mounted screen runs a session watcher while it started signed in;
// when another process removes the stored credential the screen reloads in
// the signed-out state. The REPL is started via App.Run, which blocks
// until the user exits.
package cli
