// Pipeline debugging and per-operation timing
package core

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineDebugger records pipeline operations and frame timings. A disabled
// debugger records nothing.
type PipelineDebugger struct {
	logger  *logrus.Logger
	enabled bool

	operations []PipelineOperation

	transformTimes []time.Duration
	writeTimes     []time.Duration
}

// PipelineOperation tracks one pipeline operation
type PipelineOperation struct {
	Timestamp time.Time
	Operation string // "open_source", "open_sink", "transform_frame", "write_frame", "close"
	Success   bool
	Duration  time.Duration
	Details   logrus.Fields
	Error     string
}

func NewPipelineDebugger(logger *logrus.Logger, enabled bool) *PipelineDebugger {
	return &PipelineDebugger{
		logger:         logger,
		enabled:        enabled,
		operations:     make([]PipelineOperation, 0),
		transformTimes: make([]time.Duration, 0),
		writeTimes:     make([]time.Duration, 0),
	}
}

func (pd *PipelineDebugger) Enabled() bool {
	return pd != nil && pd.enabled
}

func (pd *PipelineDebugger) LogOperation(operation string, success bool, duration time.Duration, details logrus.Fields, err error) {
	if !pd.Enabled() {
		return
	}

	errorStr := ""
	if err != nil {
		errorStr = err.Error()
	}

	pd.operations = append(pd.operations, PipelineOperation{
		Timestamp: time.Now(),
		Operation: operation,
		Success:   success,
		Duration:  duration,
		Details:   details,
		Error:     errorStr,
	})

	switch operation {
	case "transform_frame":
		pd.transformTimes = append(pd.transformTimes, duration)
		// Per-frame entries would drown the log; only failures are printed.
		if success {
			return
		}
	case "write_frame":
		pd.writeTimes = append(pd.writeTimes, duration)
		if success {
			return
		}
	}

	entry := pd.logger.WithFields(details).WithFields(logrus.Fields{
		"operation":   operation,
		"success":     success,
		"duration_ms": duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("PIPELINE Debug")
		return
	}
	entry.Debug("PIPELINE Debug")
}

func (pd *PipelineDebugger) LogFrame(index int, transform string, duration time.Duration, err error) {
	pd.LogOperation("transform_frame", err == nil, duration, logrus.Fields{
		"frame":     index,
		"transform": transform,
	}, err)
}

func (pd *PipelineDebugger) LogWrite(index int, duration time.Duration, err error) {
	pd.LogOperation("write_frame", err == nil, duration, logrus.Fields{
		"frame": index,
	}, err)
}

// GetStats summarizes everything recorded so far.
func (pd *PipelineDebugger) GetStats() map[string]interface{} {
	if !pd.Enabled() {
		return nil
	}

	stats := map[string]interface{}{
		"total_operations": len(pd.operations),
		"frames":           len(pd.transformTimes),
	}

	successCount := 0
	for _, op := range pd.operations {
		if op.Success {
			successCount++
		}
	}
	if len(pd.operations) > 0 {
		stats["success_rate"] = float64(successCount) / float64(len(pd.operations))
	}

	if len(pd.transformTimes) > 0 {
		stats["avg_transform_time"] = averageDuration(pd.transformTimes)
	}
	if len(pd.writeTimes) > 0 {
		stats["avg_write_time"] = averageDuration(pd.writeTimes)
	}

	return stats
}

// LogStatus writes the summary at debug level.
func (pd *PipelineDebugger) LogStatus() {
	if !pd.Enabled() {
		return
	}
	pd.logger.WithFields(logrus.Fields(pd.GetStats())).Debug("PIPELINE Status")
}

// Reset drops recorded operations, typically between runs of a batch.
func (pd *PipelineDebugger) Reset() {
	if !pd.Enabled() {
		return
	}
	pd.operations = pd.operations[:0]
	pd.transformTimes = pd.transformTimes[:0]
	pd.writeTimes = pd.writeTimes[:0]
}

func averageDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return total / time.Duration(len(durations))
}
