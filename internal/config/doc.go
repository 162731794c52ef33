// Package config loads and validates application configuration from a
// config file and environment variables, giving the rest of the code
// type-safe access to server, database, auth, and LLM settings.
package config
