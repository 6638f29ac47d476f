// Package session holds the authenticated-session state for the lifetime of a
// scoreline invocation.
//
// The [Session] is an explicitly constructed, dependency-injected object rather
// than a package-level singleton, so tests can build isolated sessions and no
// state leaks between them. It tracks the current [models.User], an
// authenticated flag, a loading flag, and the last error string, mutable only
// through a small fixed set of operations.
//
// Persistence goes through the [CredentialStore] contract: a bearer token and a
// serialized user are stored under two fixed keys and cleared together on
// logout. At construction the session seeds itself synchronously from the
// store; token presence alone implies "authenticated" until a protected call
// fails (see [Session.Run] and the tasks package's strict verification flow).
//
// [Decide] implements the access gate consulted before each command: a pure
// decision over the command's declared requirement and the in-memory
// authenticated flag.
package session
