// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics provides quality metrics tracked alongside the loss
// during training and validation.
//
// # Overview
//
// This package contains:
//   - Metric: the accumulator interface driven by the engine every step
//   - Accuracy: classification accuracy over int or logit predictions
//   - Collection: groups metrics so they update and reset as one unit
//   - A registry so metrics can be requested by name in model.Compile
//
// # Basic Usage
//
//	import (
//	    "github.com/arvindmuralie77/gradsflow/metrics"
//	    "github.com/arvindmuralie77/gradsflow/model"
//	)
//
//	m := model.New(learner, model.DefaultConfig())
//	err := m.Compile(model.CompileConfig{
//	    Loss:      "mse",
//	    Optimizer: "sgd",
//	    Metrics:   []string{"accuracy"},
//	})
//
// Custom metrics implement the Metric interface and register a factory:
//
//	metrics.Register("f1", func() metrics.Metric { return NewF1() })
//
// After registration the name is accepted anywhere a builtin name is.
package metrics
