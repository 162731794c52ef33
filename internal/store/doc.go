// Package store defines the persistence interfaces for users, tasks, and
// focus sessions, plus the sentinel errors and transaction helpers shared
// by their implementations. Services depend only on these interfaces, so
// the PostgreSQL layer can be swapped or wrapped without touching business
// logic.
package store
