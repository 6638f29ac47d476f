// Package services implements the HTTP client facades for the match-tracking backend.
//
// # Client
//
// [Client] owns the base URL, the HTTP client, and bearer-token attachment.
// Every request sends Content-Type: application/json; when the session holds a
// token it is attached as an Authorization: Bearer header. A request is still
// sent when no token is present; the backend's 401 comes back as a
// [RequestError] like any other failure, with no client-side short-circuit.
//
// # Facades
//
// One facade per resource family, each entry point independently callable:
//   - [MatchService] : match listings, single fixtures, date/team/competition/status
//     queries, stats, and the legacy flatter /api/events variants
//   - [AuthService] : register, login (token only), current-user profile
//   - [CommentService] : comment creation
//
// Responses are JSON-decoded and passed through the models normalizer before
// being returned, so malformed success bodies degrade to defaulted records
// rather than errors.
//
// # Error Handling
//
//   - Transport failures propagate wrapped with %w
//   - Non-2xx statuses become a *[RequestError] carrying the status code, status
//     text, a best-effort decode of the backend's {message} body, and the raw body
//   - Client-side validation failures wrap [shared.ErrValidation] and never
//     reach the network
//
// Nothing is retried; every failure is terminal for that call.
package services
