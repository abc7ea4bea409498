// Package metrics recovers the distilled project's evaluate_performance.py
// benchmark harness as a first-class component: a Collector that wraps a
// party run and yields a Metrics snapshot, and cmd/bench, which drives a
// batch of synthetic runs and writes their snapshots to a JSON file.
package metrics

import "time"

// Metrics is one run's instrumentation snapshot. Field names mirror the
// specification's benchmark interface exactly.
type Metrics struct {
	CompTimeSharing        time.Duration `json:"compTimeSharing"`
	CompTimeProcessing     time.Duration `json:"compTimeProcessing"`
	CompTimeReconstruction time.Duration `json:"compTimeReconstruction"`
	RuntimeOverall         time.Duration `json:"runtimeOverall"`
	BytesSentParty         int64         `json:"bytesSentParty"`
	BytesReceivedParty     int64         `json:"bytesReceivedParty"`
	BytesSentTTP           int64         `json:"bytesSentTtp"`
	CompCostTTP            int64         `json:"compCostTtp"`
}
