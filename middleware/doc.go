// Package middleware exposes HTTP adapters that put goSession validation in front of
// handlers.
//
// # Guards
//
//   - [RequireSession]: net/http, rejects requests without a valid session.
//   - [OptionalSession]: net/http, attaches a session when present.
//   - [GinRequireSession]: gin equivalent of RequireSession.
//
// Each guard reads "Authorization: Bearer <token>" first, then the configured session
// cookie, calls Manager.ValidateSessionToken and stores the session in the request
// context (goSession.SessionFromContext).
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Manager calls. It does NOT parse tokens
// or touch the store; every decision is delegated to ValidateSessionToken.
//
// # What this package must NOT do
//
//   - Reveal which soft failure rejected a token.
//   - Access the session store directly.
//   - Log or echo token values.
package middleware
