// Package models defines the domain records for the match-tracking client and the
// normalization layer that converts backend JSON into them.
//
// The package contains two categories of logic:
//
// 1. Canonical records: in-memory representations of backend resources
//   - [Match] : a fixture with nested [Area], [Competition], [Season], [TeamInfo], [Score]
//   - [Comment] : the authoritative standalone comment resource
//   - [User] : the authenticated account with role predicates
//
// 2. Normalization: total functions converting arbitrary JSON-decoded values into records
//   - [NormalizeMatch], [NormalizeComment], [NormalizeUser] and friends never fail;
//     missing, null, or mis-typed fields degrade to documented defaults
//   - [Comment.Wire] produces the outbound payload for comment creation
//
// Records are constructed fresh on every API response. There is no client-side identity
// map: two fetches of the same match yield two independent object graphs.
package models
