package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := newRouter(Logger(jsonLogger(&buf)))

	serve(t, h, http.MethodGet, "/pkg/chatbot.js")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "request" || entry["level"] != "INFO" {
		t.Errorf("entry = %v", entry)
	}
	if entry["route"] != "/pkg/*" || entry["path"] != "/pkg/chatbot.js" {
		t.Errorf("route/path = %v / %v", entry["route"], entry["path"])
	}
	if entry["status"] != float64(200) || entry["bytes"] != float64(len("bundle")) {
		t.Errorf("status/bytes = %v / %v", entry["status"], entry["bytes"])
	}
}

func TestLogger_ServerErrorsLogAtError(t *testing.T) {
	var buf bytes.Buffer
	h := newRouter(Logger(jsonLogger(&buf)))

	serve(t, h, http.MethodGet, "/fail")

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected error level, got %s", buf.String())
	}
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	h := newRouter(Recoverer(jsonLogger(&buf)))

	rec := serve(t, h, http.MethodGet, "/panic")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "kaboom") || !strings.Contains(buf.String(), "handler panic") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}

func TestRecoverer_ReraisesAbort(t *testing.T) {
	h := Recoverer(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
		}
	}()
	serve(t, h, http.MethodGet, "/")
}
