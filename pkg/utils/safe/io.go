package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/campus-desk/caseinbox/pkg/utils/logging"
)

// Close closes an io.Closer and logs a close failure instead of returning
// it. Meant for defers where the caller has no better recovery than the
// log line. A nil closer is a no-op.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}
