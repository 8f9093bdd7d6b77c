package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/utils/logging"
)

func TestConsoleLoggerWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatConsole)

	logger.Info("inbox ready", "cases", 42)
	gt.Value(t, strings.Contains(buf.String(), "inbox ready")).Equal(true)

	buf.Reset()
	logger.Debug("not visible at info level")
	gt.Value(t, buf.Len()).Equal(0)
}

func TestJSONLoggerRedactsSecrets(t *testing.T) {
	type requester struct {
		Name  string
		Email string `masq:"secret"`
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("case created", "requester", requester{
		Name:  "Jordan Lee",
		Email: "jordan.lee@example.edu",
	})

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record)).Required()
	gt.Value(t, record["msg"]).Equal("case created")
	gt.Value(t, strings.Contains(buf.String(), "jordan.lee@example.edu")).Equal(false)
}

func TestContextCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("saved view applied")
	gt.Value(t, strings.Contains(buf.String(), "saved view applied")).Equal(true)

	// a bare context falls back to the process default
	gt.Value(t, logging.From(context.Background()) != nil).Equal(true)
}
