package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/pkg/auth"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
)

// Authenticate requires a valid bearer token and stashes the user id
// and role on the context.
func Authenticate(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "missing authorization header"))
				return
			}
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authorization header must be a bearer token"))
				return
			}

			claims, err := issuer.ParseAccessToken(raw)
			if err != nil {
				responses.WriteError(w, r, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid or expired token"))
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				responses.WriteError(w, r, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid token subject"))
				return
			}

			ctx := withUser(r.Context(), userID, claims.Role)
			ctx = logger.IntoContext(ctx, logger.FromContext(ctx).WithUserID(userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree to one of the given roles.
func RequireRole(roles ...enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := UserRole(r.Context())
			if !ok {
				responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(w, r, apperrors.New(apperrors.CodeForbidden, "insufficient role"))
		})
	}
}
