package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"connectrpc.com/connect"
)

// captureLogs redirects the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingInterceptor(t *testing.T) {
	interceptor := LoggingInterceptor()

	tests := []struct {
		name        string
		ctx         context.Context
		next        connect.UnaryFunc
		wantParts   []string
		absentParts []string
	}{
		{
			name: "success without user",
			ctx:  context.Background(),
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return connect.NewResponse(&struct{}{}), nil
			},
			wantParts:   []string{"RPC completed", "duration_ms="},
			absentParts: []string{"user_id="},
		},
		{
			name: "success with user",
			ctx:  context.WithValue(context.Background(), UserIDKey, "u-1"),
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return connect.NewResponse(&struct{}{}), nil
			},
			wantParts: []string{"RPC completed", "user_id=u-1"},
		},
		{
			name: "connect error logs the code",
			ctx:  context.Background(),
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("no such group"))
			},
			wantParts: []string{"RPC failed", "code=not_found", "no such group"},
		},
		{
			name: "plain error maps to unknown",
			ctx:  context.Background(),
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, fmt.Errorf("boom")
			},
			wantParts: []string{"RPC failed", "code=unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			_, _ = interceptor(tt.next)(tt.ctx, connect.NewRequest(&struct{}{}))

			out := buf.String()
			for _, part := range tt.wantParts {
				if !strings.Contains(out, part) {
					t.Errorf("log output missing %q:\n%s", part, out)
				}
			}
			for _, part := range tt.absentParts {
				if strings.Contains(out, part) {
					t.Errorf("log output should not contain %q:\n%s", part, out)
				}
			}
		})
	}
}
