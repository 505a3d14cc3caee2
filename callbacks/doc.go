// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package callbacks exposes the lifecycle-event extension mechanism of the
// fit loop.
//
// # Overview
//
// Callbacks receive named events at fixed points of a run (fit, epoch,
// train/val epoch, step, forward), synchronously and in registration order.
// A callback ends a scope cooperatively by returning that scope's
// cancellation sentinel:
//
//   - ErrCancelEpoch skips the rest of the current epoch
//   - ErrCancelFit stops the whole run
//
// Any other error aborts the run after guaranteed teardown.
//
// # Basic Usage
//
//	type logEpochs struct{ callbacks.Base }
//
//	func (logEpochs) OnEpochEnd() error {
//	    fmt.Println("epoch done")
//	    return nil
//	}
//
//	m.Fit(ctx, data, model.FitConfig{
//	    MaxEpochs: 10,
//	    Callbacks: []any{logEpochs{}, "early_stopping"},
//	})
package callbacks
