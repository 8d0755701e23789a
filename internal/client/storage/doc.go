// Package storage persists client-local state: a small key/value table in
// an SQLite file that outlives the process, the terminal counterpart of
// browser-local storage.
//
// Two well-known keys hold the session: KeyToken (bearer credential) and
// KeyUserID. Any process opening the same file sees writes immediately,
// which is how a logout in one terminal reaches the session watcher of
// another. Nothing here expires values.
//
// Open runs the embedded goose migrations before returning the store.
package storage
