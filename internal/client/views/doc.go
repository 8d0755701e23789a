// Package views holds the state behind each REPL screen: the recipe grid
// (home and recent searches), the favorites list, the category slider and
// the recipe detail screen. Views fetch through the gateway and hand
// collections to the reconciler; rendering is left to the cli package.
package views
