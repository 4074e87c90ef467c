package observability

import (
	"log/slog"
	"time"
)

// TimeOperation runs fn and records its duration, count and failure under
// operation. Failures are logged at error level, successes at debug.
func TimeOperation[R any](logger *slog.Logger, metrics Metrics, operation string, fn func() (R, error)) (R, error) {
	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	tag := T("operation", operation)
	metrics.Timing(MetricOperationDuration, elapsed, tag)
	metrics.Counter(MetricOperationTotal, 1, tag)

	if err != nil {
		metrics.Counter(MetricOperationErrors, 1, tag)
		logger.Error("operation failed", "operation", operation, "duration_ms", elapsed.Milliseconds(), "error", err)
		return result, err
	}
	logger.Debug("operation completed", "operation", operation, "duration_ms", elapsed.Milliseconds())
	return result, nil
}
