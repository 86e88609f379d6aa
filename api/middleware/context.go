package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userRoleKey  contextKey = "user_role"
	requestIDKey contextKey = "request_id"
)

func withUser(ctx context.Context, userID uuid.UUID, role enums.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// UserID returns the authenticated user's id from the context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// UserRole returns the authenticated user's role from the context.
func UserRole(ctx context.Context) (enums.UserRole, bool) {
	role, ok := ctx.Value(userRoleKey).(enums.UserRole)
	return role, ok
}

// ContextWithUser attaches identity directly. Exposed for handler tests.
func ContextWithUser(ctx context.Context, userID uuid.UUID, role enums.UserRole) context.Context {
	return withUser(ctx, userID, role)
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request id assigned by the middleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
