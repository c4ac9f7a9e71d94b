// Package client talks to the EmployEra marketplace REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     identity endpoints: register, login, logout, token verification,
//     profile update, password change and e-mail lookup.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that tags
//     every request with an X-Request-Id, attaches the bearer token when one
//     is given, and maps HTTP status codes to sentinel errors.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError, which carries the status code, the
// message the server put in its body, per-field messages, and unwraps to one
// of ErrInvalidCredentials, ErrUnauthorized, ErrBadRequest, ErrNotFound or
// ErrUnavailable. Transport failures and timeouts unwrap to ErrUnavailable.
//
// Concurrency & Contexts
//
// HTTPClient holds no per-session state and is safe for concurrent use.
// Every call honors context cancellation; the overall timeout is a property
// of the underlying http.Client.
package client
