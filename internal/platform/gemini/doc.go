// Package gemini provides an implementation of the normalize.Normalizer
// interface that uses Google's Gemini API to turn free-form task text into
// structured task fields.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's domain logic to Google's external Gemini AI
// service. It translates between the application's task model and the Gemini
// API without exposing the details of the external service to the core
// application.
//
// Key components:
//
// 1. Normalizer:
//   - Implements the normalize.Normalizer interface
//   - Handles communication with the Gemini API
//   - Processes structured JSON responses into task fields
//
// 2. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes and translates API errors to application-specific errors
//   - Handles content filtering and safety measures
//
// Callers are expected to wrap this normalizer with normalize.WithFallback
// so that task creation keeps working when the API is unreachable.
package gemini
