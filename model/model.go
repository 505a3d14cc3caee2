// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"github.com/arvindmuralie77/gradsflow/internal/model"
)

// Model orchestrates training of a Learner.
type Model = model.Model

// Config holds construction options for a Model.
type Config = model.Config

// CompileConfig selects the loss, optimizer, schedulers and metrics.
type CompileConfig = model.CompileConfig

// FitConfig controls a training run.
type FitConfig = model.FitConfig

// Learner is anything that can map inputs to predictions.
type Learner = model.Learner

// TrainModeSetter is an optional Learner extension toggling train/eval mode.
type TrainModeSetter = model.TrainModeSetter

// ParameterSource is an optional Learner extension exposing trainable
// parameters, enabling optimizer construction by name.
type ParameterSource = model.ParameterSource

// Stepper overrides how a single train or validation step executes.
type Stepper = model.Stepper

// Loss computes a loss value from predictions and targets.
type Loss = model.Loss

// LossFunc adapts a plain function to the Loss interface.
type LossFunc = model.LossFunc

// Data plumbing.

// DataLoader yields batches one at a time.
type DataLoader = model.DataLoader

// Pair is the canonical (inputs, target) batch layout.
type Pair = model.Pair

// AutoDataset bundles train and validation loaders.
type AutoDataset = model.AutoDataset

// BatchAdapter splits an arbitrary batch into inputs and target.
type BatchAdapter = model.BatchAdapter

// DefaultAdapter understands Pair, [2]any, []any and map[string]any batches.
type DefaultAdapter = model.DefaultAdapter

// Accelerator prepares collaborators for a target device.
type Accelerator = model.Accelerator

// NoopAccelerator is the identity Accelerator.
type NoopAccelerator = model.NoopAccelerator

// Registry factories.
type (
	LossFactory      = model.LossFactory
	OptimizerFactory = model.OptimizerFactory
	SchedulerFactory = model.SchedulerFactory
)

// Common errors.
var (
	ErrNotCompiled      = model.ErrNotCompiled
	ErrNoTrainData      = model.ErrNoTrainData
	ErrNoLoss           = model.ErrNoLoss
	ErrBadBatch         = model.ErrBadBatch
	ErrNoParams         = model.ErrNoParams
	ErrUnknownLoss      = model.ErrUnknownLoss
	ErrUnknownOptimizer = model.ErrUnknownOptimizer
	ErrUnknownScheduler = model.ErrUnknownScheduler
)

// New creates a Model around the given learner.
func New(learner Learner, cfg Config) *Model {
	return model.New(learner, cfg)
}

// DefaultConfig returns the default model configuration.
func DefaultConfig() Config {
	return model.DefaultConfig()
}

// NewAutoDataset bundles train and validation loaders. The validation
// loader may be nil; the train loader may not.
func NewAutoDataset(train, val DataLoader) (*AutoDataset, error) {
	return model.NewAutoDataset(train, val)
}

// SliceLoader builds a DataLoader over an in-memory batch slice.
func SliceLoader(batches ...any) DataLoader {
	return model.SliceLoader(batches...)
}

// RegisterLoss makes a loss constructible by name in Compile.
func RegisterLoss(name string, f LossFactory) {
	model.RegisterLoss(name, f)
}

// RegisterOptimizer makes an optimizer constructible by name in Compile.
func RegisterOptimizer(name string, f OptimizerFactory) {
	model.RegisterOptimizer(name, f)
}

// RegisterScheduler makes a scheduler constructible by name in Compile.
func RegisterScheduler(name string, f SchedulerFactory) {
	model.RegisterScheduler(name, f)
}

// AvailableLosses lists the registered loss names, sorted.
func AvailableLosses() []string {
	return model.AvailableLosses()
}

// AvailableOptimizers lists the registered optimizer names, sorted.
func AvailableOptimizers() []string {
	return model.AvailableOptimizers()
}

// AvailableSchedulers lists the registered scheduler names, sorted.
func AvailableSchedulers() []string {
	return model.AvailableSchedulers()
}
