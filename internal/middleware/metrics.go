package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/metrics"
)

// MetricsInterceptor returns a Connect interceptor that records RPC counts
// and latencies by procedure and result code.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			metrics.ObserveRPC(req.Spec().Procedure, code, time.Since(start).Seconds())
			return resp, err
		}
	}
}
