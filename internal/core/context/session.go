// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Employee positions as stored by the backend collaborator.
const (
	PositionAdministrator = "Administrator"
	PositionSupervisor    = "Supervisor"
	PositionRegular       = "Regular"
)

// SessionContext contains the authenticated employee for one dashboard session.
// It is created at login, rebuilt per request from the session token, and never
// shared across sessions.
type SessionContext struct {
	EmployeeID int
	Username   string
	Position   string
}

type sessionContextKey struct{}

// WithSession adds SessionContext to context.
func WithSession(ctx context.Context, s *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// GetSession returns SessionContext from context, or nil when anonymous.
func GetSession(ctx context.Context) *SessionContext {
	if v, ok := ctx.Value(sessionContextKey{}).(*SessionContext); ok {
		return v
	}
	return nil
}

// GetEmployeeID returns the acting employee id from context, or zero.
func GetEmployeeID(ctx context.Context) int {
	if s := GetSession(ctx); s != nil {
		return s.EmployeeID
	}
	return 0
}

// IsAdministrator reports whether the session belongs to an Administrator.
func (s *SessionContext) IsAdministrator() bool {
	return s != nil && s.Position == PositionAdministrator
}
