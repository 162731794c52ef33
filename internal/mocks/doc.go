// Package mocks provides mock implementations of service interfaces for
// testing. Each mock supports custom behavior functions plus default
// return values for the common cases.
package mocks
