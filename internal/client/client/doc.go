// Package client contains the transport side of the user-management front
// end.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the remote user service (see the
//     Client interface): ListUsers, GetUser, CreateUser, UpdateUser and
//     DeleteUser.
//  2. A concrete HTTP+JSON implementation (see HTTPClient) bound to a base
//     URL such as https://jsonplaceholder.typicode.com. Every request carries
//     an X-Request-ID header so failures can be matched with server logs.
//
// # Error Handling
//
// Failed calls return a *RemoteCallError wrapping one of the sentinel errors
// ErrUnavailable, ErrNotFound or ErrUnexpectedStatus; match them with
// errors.Is and extract details with errors.As.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and deadlines.
package client
