// Package domain contains the core business entities, value objects, and
// domain logic of the application: generation requests, generated material
// bundles, persisted library materials, and users. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
