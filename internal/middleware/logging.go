package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that writes one structured
// log line per RPC after the handler returns. Failures log at Warn with the
// Connect code; the user_id attribute is omitted on unauthenticated
// procedures rather than logged empty.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"rpc", req.Spec().Procedure,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if userID := GetUserID(ctx); userID != "" {
				attrs = append(attrs, "user_id", userID)
			}

			if err != nil {
				// CodeOf maps non-Connect errors to CodeUnknown.
				attrs = append(attrs, "code", connect.CodeOf(err).String(), "error", err)
				slog.Warn("RPC failed", attrs...)
			} else {
				slog.Info("RPC completed", attrs...)
			}

			return resp, err
		}
	}
}
