package tool

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miyamo2/qilin"
	"go.uber.org/zap"

	"github.com/meteomcp/weather-mcp-service/internal/observability"
)

// CorrelationIDMiddleware stamps every invocation with a correlation ID and
// binds a logger carrying it into the invocation context, where the pipeline
// picks it up.
func CorrelationIDMiddleware(logger *zap.Logger) qilin.ToolMiddlewareFunc {
	return func(next qilin.ToolHandlerFunc) qilin.ToolHandlerFunc {
		return func(c qilin.ToolContext) error {
			corrID := uuid.New().String()

			bound := logger.With(
				zap.String("correlation_id", corrID),
				zap.String("tool", c.ToolName()))

			ctx := context.WithValue(c.Context(), "correlation_id", corrID)
			ctx = context.WithValue(ctx, "logger", bound)
			c.SetContext(ctx)

			return next(c)
		}
	}
}

// MetricsMiddleware records invocation duration and the in-flight gauge, and
// feeds the tracker the graceful shutdown path waits on.
func MetricsMiddleware(tracker *InFlightTracker) qilin.ToolMiddlewareFunc {
	return func(next qilin.ToolHandlerFunc) qilin.ToolHandlerFunc {
		return func(c qilin.ToolContext) error {
			start := time.Now()
			tracker.Increment()
			observability.ToolInvocationsInFlight.Inc()
			defer func() {
				observability.ToolInvocationsInFlight.Dec()
				observability.ToolInvocationDuration.Observe(time.Since(start).Seconds())
				tracker.Decrement()
			}()
			return next(c)
		}
	}
}
