// Package api contains the HTTP transport layer: request/response models,
// handlers for authentication, generation and the material library, and
// the error-to-status mapping that keeps internal details out of client
// responses.
package api
