// Package repositories implements SQLite persistence for the client's local state.
//
// Two concerns live here:
//   - [CredentialRepository] : the key-value store backing the session, holding
//     the bearer token and the serialized user under two fixed keys
//   - [MatchRepository] : snapshots of fetched matches for offline listing,
//     with soft deletes and per-table sequence counters
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs
// and timestamps; [NextSequence] atomically increments per-table counters in
// dedicated sequence tables.
package repositories
