// Package models defines the client-side data types exchanged with the
// recipe API and held in view state.
package models
