// Package postgres contains PostgreSQL implementations of the store
// interfaces, using database/sql with the pgx driver. Ownership scoping is
// enforced in SQL: every material statement filters on both the record ID
// and the caller's user ID.
package postgres
