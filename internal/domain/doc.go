// Package domain contains the core business entities of FocusFlow: users,
// tasks, and focus sessions, together with their validation rules. It has
// no dependency on storage, transport, or any other infrastructure.
package domain
