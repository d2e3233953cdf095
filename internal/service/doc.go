// Package service contains the application services that orchestrate
// domain entities and stores: committing generated bundles to the library,
// editing and deleting materials, and the read-side query service used by
// listings.
package service
