// Package store provides abstractions and implementations for data
// persistence. Every material operation takes the caller's owner identity
// as a first-class parameter; no operation ever returns or mutates a record
// belonging to a different owner.
package store
