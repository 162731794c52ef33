// Package focus implements the focus-pattern estimator and the task
// ranker: the per-request computations that turn a user's completed
// session history into per-day-part productivity scores and order their
// pending tasks by priority and focus match.
package focus
