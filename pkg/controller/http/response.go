package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/usecase"
	"github.com/campus-desk/caseinbox/pkg/utils/errutil"
	"github.com/campus-desk/caseinbox/pkg/utils/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err)
	}
}

// respondError maps engine errors to HTTP status codes. Anything unmapped
// is a 500 and gets the full error treatment (log + Sentry).
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrAgentNotFound),
		errors.Is(err, usecase.ErrViewNotFound),
		errors.Is(err, usecase.ErrUndoNotFound),
		errors.Is(err, interfaces.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, interfaces.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrUndoExpired):
		status = http.StatusGone
	}

	if status >= http.StatusInternalServerError {
		_ = errutil.Handle(ctx, err, "request failed")
	}

	respondJSON(ctx, w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errors.Join(usecase.ErrValidation, err), "failed to decode request body")
	}
	return nil
}
