package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/forces-league/internal/platform/logging"
)

func TestIsHealthCheckLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health request", msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{name: "other path", msg: "http request", args: []any{"path", "/v1/standings"}},
		{name: "other message", msg: "data store ready", args: []any{"path", "/healthz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHealthCheckLog(tt.msg, tt.args); got != tt.want {
				t.Fatalf("isHealthCheckLog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{
		"match_id", "m1",
		"total", 1.5,
		"error", errors.New("store down"),
		"took", 2 * time.Second,
		42, "unkeyed",
		"dangling",
	})
	if len(attrs) != 6 {
		t.Fatalf("expected 6 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "m1" {
		t.Fatalf("unexpected first attribute: %+v", attrs[0])
	}
	if attrs[1].Value.Kind() != otellog.KindFloat64 || attrs[1].Value.AsFloat64() != 1.5 {
		t.Fatalf("unexpected total attribute: %+v", attrs[1])
	}
	if attrs[2].Value.AsString() != "store down" {
		t.Fatalf("unexpected error attribute: %+v", attrs[2])
	}
	if attrs[3].Value.AsString() != "2s" {
		t.Fatalf("unexpected duration attribute: %+v", attrs[3])
	}
	if attrs[4].Key != "arg_4" {
		t.Fatalf("expected positional key for non-string key, got %q", attrs[4].Key)
	}
	if attrs[5].Key != "dangling" || !attrs[5].Value.Empty() {
		t.Fatalf("expected empty value for trailing key, got %+v", attrs[5])
	}
}

func TestOTelSeverity(t *testing.T) {
	cases := map[logging.Level]otellog.Severity{
		logging.LevelDebug: otellog.SeverityDebug,
		logging.LevelInfo:  otellog.SeverityInfo,
		logging.LevelWarn:  otellog.SeverityWarn,
		logging.LevelError: otellog.SeverityError,
	}
	for level, want := range cases {
		if got := otelSeverity(level); got != want {
			t.Fatalf("otelSeverity(%v) = %v, want %v", level, got, want)
		}
	}
}

func TestUptraceLogMirror_NoProviderIsSafe(t *testing.T) {
	mirror := newUptraceLogMirror("test")
	mirror(context.Background(), logging.LevelInfo, "scores saved", "match_id", "m1")
	mirror(context.Background(), logging.LevelInfo, "http request", "path", "/healthz")
}
