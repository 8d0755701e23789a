// Package session owns the signed-in user's credentials.
//
// Manager is the only writer of the persisted token and user id. Views read
// the current Session from it and may Subscribe to be told about writes made
// in this process. Writes made elsewhere (another terminal sharing the same
// store) are only visible by reading the store again, which is what Watcher
// does on a fixed interval.
package session
