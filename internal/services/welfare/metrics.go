package welfare

import "time"

// MetricsCollector receives operation telemetry.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, code string)
	RecordPointsMoved(operation string, points int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordPointsMoved(string, int64)               {}

type noopNotifier struct{}

func (noopNotifier) MarkDirty() {}
