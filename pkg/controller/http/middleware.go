package http

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/utils/errutil"
)

type ctxAgentKey struct{}

// agentMiddleware reads the calling agent from the X-Agent-ID header.
// Authentication proper lives in front of this service; the engine only
// needs an identity for ownership ("me" filters, view ownership, audit).
func agentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentID := types.AgentID(r.Header.Get("X-Agent-ID"))
		if err := agentID.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(err, "valid X-Agent-ID header is required"),
				http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), ctxAgentKey{}, agentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// agentFrom extracts the calling agent set by agentMiddleware
func agentFrom(ctx context.Context) types.AgentID {
	agentID, _ := ctx.Value(ctxAgentKey{}).(types.AgentID)
	return agentID
}
