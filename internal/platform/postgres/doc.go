// Package postgres implements the internal/store interfaces on PostgreSQL.
// It owns the SQL, the mapping between database rows and domain entities,
// and the translation of driver errors into store sentinels. Schema
// migrations live in the migrations subdirectory and run through goose.
package postgres
