// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms and learning-rate
// schedulers for training.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - StepLR: interval-based learning-rate decay
//   - Optimizer and Scheduler interfaces for custom implementations
//
// # Basic Usage
//
//	import (
//	    "github.com/arvindmuralie77/gradsflow/model"
//	    "github.com/arvindmuralie77/gradsflow/optim"
//	)
//
//	m := model.New(learner, model.DefaultConfig())
//	err := m.Compile(model.CompileConfig{
//	    Loss: "mse",
//	    Optimizer: optim.NewSGD(learner.Parameters(), optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    }),
//	})
//
// Optimizers can also be requested by name ("sgd", "adam") with tuning
// knobs passed through CompileConfig.OptimizerConfig.
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(params, optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
//
// # Schedulers
//
// StepLR decays the learning rate by a factor every fixed number of
// epochs. The engine steps every configured scheduler once per epoch:
//
//	scheduler := optim.NewStepLR(optimizer, optim.StepLRConfig{
//	    StepSize: 10,
//	    Gamma:    0.5,
//	})
package optim
