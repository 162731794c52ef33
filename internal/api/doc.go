// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for the FocusFlow API. It adapts HTTP concerns
// (auth headers, JSON bodies, status codes) to the task, session, analytics
// and schedule services underneath.
package api
