package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/warmpaws/warmpaws-backend/api/responses"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
)

// Recoverer converts panics into 500 responses with the stack logged.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logg := logger.FromContext(r.Context())
				logg.Error("panic recovered", fmt.Errorf("%v", rec), map[string]any{
					"stack": string(debug.Stack()),
				})
				responses.WriteError(w, r, apperrors.New(apperrors.CodeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
