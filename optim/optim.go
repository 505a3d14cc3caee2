// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/arvindmuralie77/gradsflow/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Scheduler adjusts an optimizer's learning rate over the course of a run.
type Scheduler = optim.Scheduler

// Parameter is one flat trainable parameter with its gradient buffer.
type Parameter = optim.Parameter

// NewParameter creates a named parameter of the given size, zero-initialized.
func NewParameter(name string, size int) *Parameter {
	return optim.NewParameter(name, size)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(
//	    learner.Parameters(),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	)
func NewSGD(params []*Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(
//	    learner.Parameters(),
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float64{0.9, 0.999},
//	        Eps:   1e-8,
//	    },
//	)
func NewAdam(params []*Parameter, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// StepLR (interval learning-rate decay)

// StepLR decays an optimizer's learning rate by Gamma every StepSize steps.
type StepLR = optim.StepLR

// StepLRConfig contains configuration for the StepLR scheduler.
type StepLRConfig = optim.StepLRConfig

// NewStepLR creates a StepLR schedule over the given optimizer.
func NewStepLR(optimizer Optimizer, config StepLRConfig) *StepLR {
	return optim.NewStepLR(optimizer, config)
}
