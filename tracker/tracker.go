// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tracker

import (
	"github.com/arvindmuralie77/gradsflow/internal/tracker"
)

// Tracker tracks loss and metrics during model.Fit.
type Tracker = tracker.Tracker

// TrackingValues bundles the accumulators of one mode.
type TrackingValues = tracker.TrackingValues

// Value maintains the running average of one scalar stream.
type Value = tracker.Value

// Record is one append-only log entry.
type Record = tracker.Record

// Itemer is implemented by values reporting themselves as a scalar.
type Itemer = tracker.Itemer

// Tracking modes.
const (
	ModeTrain = tracker.ModeTrain
	ModeVal   = tracker.ModeVal
)

// Common errors.
var (
	ErrUnknownKey  = tracker.ErrUnknownKey
	ErrUnknownMode = tracker.ErrUnknownMode
	ErrNotScalar   = tracker.ErrNotScalar
)

// New returns a Tracker with fresh accumulators.
func New() *Tracker {
	return tracker.New()
}

// Item converts a scalar-like value to float64.
func Item(v any) (float64, error) {
	return tracker.Item(v)
}
