package recorder

import "EventMetrics/internal/batch"

// Recorder persists batch-run history for later analysis.
type Recorder interface {
	RecordRun(marketTicker string, rep *batch.Report) error
	Close() error
}
