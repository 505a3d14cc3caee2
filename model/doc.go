// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the training engine: a Keras-style Model that
// drives a user-supplied Learner through compile and fit.
//
// # Overview
//
// This package contains:
//   - Model: the orchestrator owning the optimizer, loss, metrics,
//     tracker and callback runner
//   - Learner: the minimal contract for anything trainable (a single
//     Forward method; optional Train and Parameters extensions)
//   - AutoDataset: train/validation dataloader bundle
//   - CompileConfig and FitConfig: training configuration
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    "github.com/arvindmuralie77/gradsflow/model"
//	)
//
//	func main() {
//	    m := model.New(learner, model.DefaultConfig())
//
//	    err := m.Compile(model.CompileConfig{
//	        Loss:         "mse",
//	        Optimizer:    "sgd",
//	        LearningRate: 0.01,
//	        Metrics:      []string{"accuracy"},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    data, err := model.NewAutoDataset(trainLoader, valLoader)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    tracker, err := m.Fit(context.Background(), data, model.FitConfig{
//	        MaxEpochs: 10,
//	        Callbacks: []any{"early_stopping"},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(tracker.CreateTable())
//	}
//
// # Training Loop
//
// Fit runs the loop on the caller's behalf:
//
//	for each epoch:
//	    train: zero grads, forward, loss, backward, optimizer step
//	    validate (if a val loader is present): forward, loss
//	    step schedulers, report progress
//
// Callbacks observe every stage and can cancel the current epoch or the
// whole run by returning callbacks.ErrCancelEpoch or
// callbacks.ErrCancelFit. Cancelling the passed context stops training
// gracefully after the current step: teardown still runs and Fit
// returns the tracker without an error.
//
// Fit can be called repeatedly; training resumes from the tracked epoch
// unless FitConfig.Restart is set.
package model
