// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/arvindmuralie77/gradsflow/internal/metrics"
)

// Metric accumulates a quality score over prediction/target pairs.
type Metric = metrics.Metric

// Collection groups metrics so the engine can drive them as one unit.
type Collection = metrics.Collection

// Accuracy is the fraction of correctly classified samples.
type Accuracy = metrics.Accuracy

// Factory constructs a fresh metric instance.
type Factory = metrics.Factory

// Common errors.
var (
	ErrUnknownMetric = metrics.ErrUnknownMetric
	ErrShape         = metrics.ErrShape
)

// NewCollection creates a collection over the given metrics.
func NewCollection(ms ...Metric) *Collection {
	return metrics.NewCollection(ms...)
}

// NewAccuracy creates an empty accuracy accumulator.
func NewAccuracy() *Accuracy {
	return metrics.NewAccuracy()
}

// Register makes a metric constructible by name.
func Register(name string, f Factory) {
	metrics.Register(name, f)
}

// Build constructs the metric registered under name.
func Build(name string) (Metric, error) {
	return metrics.Build(name)
}

// Available lists the registered metric names, sorted.
func Available() []string {
	return metrics.Available()
}
