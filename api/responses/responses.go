package responses

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
	"github.com/warmpaws/warmpaws-backend/pkg/types"
)

// WriteSuccess writes the {data} envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps the error to its HTTP status and writes the {error}
// envelope. Internal detail never leaks; the full chain goes to the log.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logg := logger.FromContext(r.Context())

	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, "unexpected error")
	}
	meta := apperrors.MetadataFor(typed.Code())

	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error("request failed", err, map[string]any{
			"dump": apperrors.Dump(err),
		})
	} else {
		logg.Warn("request rejected", map[string]any{
			"code":    typed.Code(),
			"message": typed.Message(),
		})
	}

	body := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: typed.Message(),
		},
	}
	if body.Error.Message == "" || meta.HTTPStatus >= http.StatusInternalServerError {
		body.Error.Message = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		body.Error.Details = typed.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(body)
}
