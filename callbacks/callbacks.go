// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package callbacks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arvindmuralie77/gradsflow/internal/callbacks"
)

// Callback receives lifecycle events from the fit loop.
type Callback = callbacks.Callback

// Base is a no-op Callback, meant for embedding.
type Base = callbacks.Base

// Runner is the ordered callback registry of one engine.
type Runner = callbacks.Runner

// Trainer is the view of the engine exposed to callbacks.
type Trainer = callbacks.Trainer

// StepOutput is what one train or val step produced.
type StepOutput = callbacks.StepOutput

// Payload carries the batch and its outputs to the step-end hooks.
type Payload = callbacks.Payload

// Backpropagator is implemented by loss values that can run a backward pass.
type Backpropagator = callbacks.Backpropagator

// Event names the two cancelable scopes of a run.
type Event = callbacks.Event

// Scoped events.
const (
	EventFit   = callbacks.EventFit
	EventEpoch = callbacks.EventEpoch
)

// Cancellation sentinels.
var (
	ErrCancelEpoch = callbacks.ErrCancelEpoch
	ErrCancelFit   = callbacks.ErrCancelFit
)

// ErrUnknownCallback is returned when a callback identifier is not registered.
var ErrUnknownCallback = callbacks.ErrUnknownCallback

// Factory constructs a callback bound to a trainer.
type Factory = callbacks.Factory

// ProgressConfig tunes the progress reporter.
type ProgressConfig = callbacks.ProgressConfig

// Progress renders a per-epoch progress bar and the epoch summary table.
type Progress = callbacks.Progress

// EarlyStoppingConfig tunes the early stopping policy.
type EarlyStoppingConfig = callbacks.EarlyStoppingConfig

// EarlyStopping cancels the fit once the monitored loss stops improving.
type EarlyStopping = callbacks.EarlyStopping

// CSVLogger writes the tracker's step log to a CSV file on fit end.
type CSVLogger = callbacks.CSVLogger

// MetricsExporter publishes the tracker's aggregates as Prometheus gauges.
type MetricsExporter = callbacks.MetricsExporter

// TrainEval is the always-installed optimization and tracking callback.
type TrainEval = callbacks.TrainEval

// NewRunner creates a runner bound to the given trainer.
func NewRunner(trainer Trainer, cbs ...Callback) *Runner {
	return callbacks.NewRunner(trainer, cbs...)
}

// NewProgress creates a progress reporter for the given trainer.
func NewProgress(trainer Trainer, cfg ProgressConfig) *Progress {
	return callbacks.NewProgress(trainer, cfg)
}

// NewEarlyStopping creates an early stopping watchdog.
func NewEarlyStopping(trainer Trainer, cfg EarlyStoppingConfig) *EarlyStopping {
	return callbacks.NewEarlyStopping(trainer, cfg)
}

// NewCSVLogger creates a CSV history logger writing to path.
func NewCSVLogger(trainer Trainer, path string) *CSVLogger {
	return callbacks.NewCSVLogger(trainer, path)
}

// NewMetricsExporter creates a Prometheus exporter registered on reg.
func NewMetricsExporter(trainer Trainer, reg prometheus.Registerer) (*MetricsExporter, error) {
	return callbacks.NewMetricsExporter(trainer, reg)
}

// Register makes a callback constructible by name in model.Fit.
func Register(name string, f Factory) {
	callbacks.Register(name, f)
}

// Build constructs the callback registered under name.
func Build(name string, trainer Trainer) (Callback, error) {
	return callbacks.Build(name, trainer)
}

// Available lists the registered callback names, sorted.
func Available() []string {
	return callbacks.Available()
}
