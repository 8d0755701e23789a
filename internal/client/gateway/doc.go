// Package gateway is the client's view of the DessertAI REST API.
//
// # Overview
//
// Client exposes one method per endpoint (recipes, search, ratings,
// comments, favorites, search history, accounts, contact). Requests are
// plain JSON over go-retryablehttp; the retry budget defaults to zero so a
// call is a single attempt unless configured otherwise. Nothing is cached.
//
// # Error Handling
//
// Failures fall into three classes that callers can tell apart:
//
//  1. Transport failure: errors.Is(err, ErrUnavailable).
//  2. Non-2xx with a JSON body carrying "message": *APIError with the
//     server text in Message.
//  3. Non-2xx (or undecodable 2xx) without a usable body: *APIError with
//     Fallback set and the endpoint's fixed message.
//
// UserMessage turns any of them into the text shown next to the control
// that issued the request.
package gateway
