// Package session coordinates concurrent access to per-user session records.
//
// Calls for different users proceed fully in parallel; calls for the same
// user are serialized so a read-modify-write cycle never interleaves with
// another and whichever write lands last leaves a self-consistent record.
package session
