// Package session carries the resolved caller identity through the request
// context. Handlers receive the session explicitly instead of re-deriving it
// from ambient credentials.
package session

import (
	"context"

	"github.com/google/uuid"
)

// Session is the resolved identity of the current caller.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type contextKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext extracts the session installed by the auth middleware.
// ok is false for unauthenticated requests; callers must treat that as a
// terminal condition, not a retryable one.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
