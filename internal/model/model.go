// Package model implements the training engine: Compile wires the loss,
// optimizer, schedulers and metrics onto a learner; Fit drives the
// epoch → train/val → step loop, delegating all side effects to the Tracker
// and the callback Runner.
//
// The engine is a sequencer. It owns no numerical computation: forward
// passes, loss values, gradients and device placement all belong to the
// collaborators it was compiled with. One Fit call runs the entire nested
// loop synchronously on the calling goroutine.
package model

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/arvindmuralie77/gradsflow/internal/callbacks"
	"github.com/arvindmuralie77/gradsflow/internal/metrics"
	"github.com/arvindmuralie77/gradsflow/internal/optim"
	"github.com/arvindmuralie77/gradsflow/internal/tracker"
)

// Learner is the trainable model driven by the engine.
type Learner interface {
	// Forward computes predictions for one batch of inputs.
	Forward(inputs any) any
}

// TrainModeSetter is implemented by learners that behave differently in
// train and eval mode (dropout, batch norm, gradient recording).
type TrainModeSetter interface {
	Train(training bool)
}

// ParameterSource is implemented by learners that expose flat parameters,
// enabling string optimizer identifiers in Compile.
type ParameterSource interface {
	Parameters() []*optim.Parameter
}

// Stepper replaces the per-batch behavior of the engine. TrainStep and
// ValStep default to the same pipeline but stay separately overridable:
// validation must never perform gradient updates, which is enforced by the
// optimization policy (the train-eval callback), not by the step itself.
type Stepper interface {
	TrainStep(batch any) (callbacks.StepOutput, error)
	ValStep(batch any) (callbacks.StepOutput, error)
}

// Config carries the engine's construction options.
type Config struct {
	// Accelerator prepares the optimizer for its device. Defaults to the
	// in-place no-op accelerator.
	Accelerator Accelerator
	// Adapter splits batches into inputs and target. Defaults to
	// DefaultAdapter.
	Adapter BatchAdapter
	// Stepper overrides the per-batch pipeline. Defaults to the engine's
	// own Step for both train and val.
	Stepper Stepper
	// SmokeTest truncates every loop to a single iteration: one step per
	// epoch loop and one epoch per fit, for fast smoke tests.
	SmokeTest bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Accelerator: NoopAccelerator{},
		Adapter:     DefaultAdapter{},
	}
}

// CompileConfig selects the training collaborators. Loss, Optimizer,
// Schedulers and Metrics each accept either a registered string identifier
// or an already-built value; a nil/empty field leaves the corresponding
// engine slot untouched, supporting incremental re-compilation.
type CompileConfig struct {
	// Loss is a registered name (string) or a Loss.
	Loss any
	// Optimizer is a registered name (string) or an optim.Optimizer.
	// Building by name requires the learner to implement ParameterSource.
	Optimizer any
	// Schedulers are registered names (string) or optim.Scheduler values.
	Schedulers []any
	// LearningRate for optimizers built by name. Defaults to 3e-4.
	LearningRate float64
	// Metrics are registered names (string) or metrics.Metric values.
	Metrics []any

	// Per-collaborator configuration maps for registry builds.
	LossConfig      map[string]any
	OptimizerConfig map[string]any
	SchedulerConfig []map[string]any
}

// FitConfig carries the per-run options. The zero value means: one epoch,
// full pass per epoch, resume from previous tracker state, progress shown.
type FitConfig struct {
	// MaxEpochs to train. Values below 1 are treated as 1.
	MaxEpochs int
	// StepsPerEpoch caps the number of train steps per epoch; 0 runs the
	// full loader. Exactly StepsPerEpoch steps execute when the loader is
	// longer.
	StepsPerEpoch int
	// Callbacks to append for this run, each a callbacks.Callback or a
	// registered name.
	Callbacks []any
	// Restart discards all tracker history before the run. The default is
	// to resume, supporting multi-call incremental training.
	Restart bool
	// DisableProgress suppresses the automatic progress callback.
	DisableProgress bool
	// Progress configures the automatic progress callback.
	Progress callbacks.ProgressConfig
}

// Model ties a learner to the tracking and callback machinery and drives the
// fit loop. Create with New, wire with Compile, run with Fit.
type Model struct {
	learner Learner
	cfg     Config

	tracker *tracker.Tracker
	runner  *callbacks.Runner
	data    *AutoDataset

	loss       Loss
	optimizer  optim.Optimizer
	schedulers []optim.Scheduler
	metrics    *metrics.Collection
	compiled   bool
}

// New creates an engine around the learner. The tracker and the callback
// runner (seeded with the train-eval callback) live for the model's
// lifetime.
func New(learner Learner, cfg Config) *Model {
	if cfg.Accelerator == nil {
		cfg.Accelerator = NoopAccelerator{}
	}
	if cfg.Adapter == nil {
		cfg.Adapter = DefaultAdapter{}
	}

	m := &Model{
		learner: learner,
		cfg:     cfg,
		tracker: tracker.New(),
		metrics: metrics.NewCollection(),
	}
	if cfg.Stepper == nil {
		m.cfg.Stepper = defaultStepper{m}
	}
	m.runner = callbacks.NewRunner(m, callbacks.NewTrainEval(m))
	return m
}

// Learner returns the trainable model.
func (m *Model) Learner() Learner { return m.learner }

// Tracker returns the engine's run state aggregator.
func (m *Model) Tracker() *tracker.Tracker { return m.tracker }

// Optimizer returns the compiled optimizer, nil if none was configured.
func (m *Model) Optimizer() optim.Optimizer { return m.optimizer }

// Schedulers returns the compiled learning-rate schedulers.
func (m *Model) Schedulers() []optim.Scheduler { return m.schedulers }

// SetTrainMode flips the learner between train and eval behavior.
func (m *Model) SetTrainMode(training bool) {
	if s, ok := m.learner.(TrainModeSetter); ok {
		s.Train(training)
	}
}

// ResetMetrics clears the compiled metric accumulators.
func (m *Model) ResetMetrics() { m.metrics.Reset() }

// Compiled reports whether Compile has run successfully.
func (m *Model) Compiled() bool { return m.compiled }

// Compile builds the optimizer, schedulers, loss and metrics from the given
// configuration and attaches them to the engine. It must run before Fit.
func (m *Model) Compile(cfg CompileConfig) error {
	lr := cfg.LearningRate
	if lr == 0 {
		lr = 3e-4
	}

	if cfg.Optimizer != nil {
		opt, err := m.resolveOptimizer(cfg.Optimizer, lr, cfg.OptimizerConfig)
		if err != nil {
			return err
		}
		m.optimizer = m.cfg.Accelerator.Prepare(opt)
	}

	if len(cfg.Schedulers) > 0 {
		schedulers, err := m.resolveSchedulers(cfg.Schedulers, cfg.SchedulerConfig)
		if err != nil {
			return err
		}
		m.schedulers = schedulers
	}

	if cfg.Loss != nil {
		loss, err := resolveLoss(cfg.Loss, cfg.LossConfig)
		if err != nil {
			return err
		}
		m.loss = loss
	}

	if err := m.AddMetrics(cfg.Metrics...); err != nil {
		return err
	}

	m.compiled = true
	return nil
}

// AddMetrics appends metrics to the compiled collection; each entry is a
// registered name or a metrics.Metric.
func (m *Model) AddMetrics(specs ...any) error {
	for _, spec := range specs {
		switch v := spec.(type) {
		case metrics.Metric:
			m.metrics.Add(v)
		case string:
			built, err := metrics.Build(v)
			if err != nil {
				return err
			}
			m.metrics.Add(built)
		default:
			return fmt.Errorf("metric must be a metrics.Metric or registered name, got %T", spec)
		}
	}
	return nil
}

func (m *Model) resolveOptimizer(spec any, lr float64, cfg map[string]any) (optim.Optimizer, error) {
	switch v := spec.(type) {
	case optim.Optimizer:
		return v, nil
	case string:
		src, ok := m.learner.(ParameterSource)
		if !ok {
			return nil, fmt.Errorf("optimizer %q: %w", v, ErrNoParams)
		}
		return buildOptimizer(v, src.Parameters(), lr, cfg)
	}
	return nil, fmt.Errorf("optimizer must be an optim.Optimizer or registered name, got %T", spec)
}

func (m *Model) resolveSchedulers(specs []any, cfgs []map[string]any) ([]optim.Scheduler, error) {
	out := make([]optim.Scheduler, 0, len(specs))
	for i, spec := range specs {
		switch v := spec.(type) {
		case optim.Scheduler:
			out = append(out, v)
		case string:
			if m.optimizer == nil {
				return nil, fmt.Errorf("scheduler %q: no optimizer compiled", v)
			}
			var cfg map[string]any
			if i < len(cfgs) {
				cfg = cfgs[i]
			}
			s, err := buildScheduler(v, m.optimizer, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		default:
			return nil, fmt.Errorf("scheduler must be an optim.Scheduler or registered name, got %T", spec)
		}
	}
	return out, nil
}

func resolveLoss(spec any, cfg map[string]any) (Loss, error) {
	switch v := spec.(type) {
	case Loss:
		return v, nil
	case func(preds, target any) any:
		return LossFunc(v), nil
	case string:
		return buildLoss(v, cfg)
	}
	return nil, fmt.Errorf("loss must be a Loss, func(preds, target any) any or registered name, got %T", spec)
}

// forwardOnce wraps one forward pass in the forward hooks.
func (m *Model) forwardOnce(inputs any) (any, error) {
	if err := m.runner.OnForwardStart(); err != nil {
		return nil, err
	}
	preds := m.learner.Forward(inputs)
	if err := m.runner.OnForwardEnd(); err != nil {
		return nil, err
	}
	return preds, nil
}

// Step runs the shared per-batch pipeline: adapt the batch, forward,
// loss, metrics.
func (m *Model) Step(batch any) (callbacks.StepOutput, error) {
	if m.loss == nil {
		return callbacks.StepOutput{}, ErrNoLoss
	}

	inputs, err := m.cfg.Adapter.Inputs(batch)
	if err != nil {
		return callbacks.StepOutput{}, err
	}
	target, err := m.cfg.Adapter.Target(batch)
	if err != nil {
		return callbacks.StepOutput{}, err
	}

	preds, err := m.forwardOnce(inputs)
	if err != nil {
		return callbacks.StepOutput{}, err
	}

	lossValue := m.loss.Compute(preds, target)
	scalar, err := tracker.Item(lossValue)
	if err != nil {
		return callbacks.StepOutput{}, fmt.Errorf("loss value: %w", err)
	}

	out := callbacks.StepOutput{Loss: scalar, RawLoss: lossValue}
	if m.metrics.Len() > 0 {
		if err := m.metrics.Update(preds, target); err != nil {
			return callbacks.StepOutput{}, err
		}
		out.Metrics = m.metrics.Compute()
	}
	return out, nil
}

// defaultStepper routes both step kinds through Model.Step.
type defaultStepper struct{ m *Model }

func (s defaultStepper) TrainStep(batch any) (callbacks.StepOutput, error) { return s.m.Step(batch) }
func (s defaultStepper) ValStep(batch any) (callbacks.StepOutput, error)   { return s.m.Step(batch) }

// trainOneEpoch iterates the train loader, firing the step hooks around
// every batch. It honors StepsPerEpoch exactly and stops after the first
// batch in smoke-test mode.
func (m *Model) trainOneEpoch(ctx context.Context, loader DataLoader) error {
	t := m.tracker
	step := 0

	var loopErr error
	for batch := range loader {
		if t.StepsPerEpoch > 0 && step >= t.StepsPerEpoch {
			break
		}
		if loopErr = ctx.Err(); loopErr != nil {
			break
		}

		t.Train.Steps = step
		if loopErr = m.runner.OnTrainStepStart(); loopErr != nil {
			break
		}
		out, err := m.cfg.Stepper.TrainStep(batch)
		if err != nil {
			loopErr = err
			break
		}
		if loopErr = m.runner.OnTrainStepEnd(callbacks.Payload{Batch: batch, Output: out}); loopErr != nil {
			break
		}

		step++
		if m.cfg.SmokeTest {
			break
		}
	}
	return loopErr
}

// valOneEpoch iterates the val loader with the val step hooks.
func (m *Model) valOneEpoch(ctx context.Context, loader DataLoader) error {
	t := m.tracker
	step := 0

	var loopErr error
	for batch := range loader {
		if loopErr = ctx.Err(); loopErr != nil {
			break
		}

		t.Val.Steps = step
		if loopErr = m.runner.OnValStepStart(); loopErr != nil {
			break
		}
		out, err := m.cfg.Stepper.ValStep(batch)
		if err != nil {
			loopErr = err
			break
		}
		if loopErr = m.runner.OnValStepEnd(callbacks.Payload{Batch: batch, Output: out}); loopErr != nil {
			break
		}

		step++
		if m.cfg.SmokeTest {
			break
		}
	}
	return loopErr
}

func (m *Model) trainEpochWithEvent(ctx context.Context) error {
	if err := m.runner.OnTrainEpochStart(); err != nil {
		return err
	}
	if err := m.trainOneEpoch(ctx, m.data.Train); err != nil {
		return err
	}
	return m.runner.OnTrainEpochEnd()
}

// valEpochWithEvent runs validation. Without a val loader it is skipped
// entirely, hooks included.
func (m *Model) valEpochWithEvent(ctx context.Context) error {
	if !m.data.HasVal() {
		return nil
	}
	if err := m.runner.OnValEpochStart(); err != nil {
		return err
	}
	if err := m.valOneEpoch(ctx, m.data.Val); err != nil {
		return err
	}
	return m.runner.OnValEpochEnd()
}

// runEpochs drives the epoch loop from the tracker's current epoch up to
// MaxEpochs. Each iteration runs inside its own "epoch" cancellation scope,
// so an epoch cancel ends only that epoch.
func (m *Model) runEpochs(ctx context.Context) error {
	t := m.tracker

	for epoch := t.CurrentEpoch; epoch < t.MaxEpochs; epoch++ {
		t.CurrentEpoch = epoch

		err := m.runner.WithEvent(callbacks.EventEpoch, callbacks.ErrCancelEpoch, func() error {
			if err := m.trainEpochWithEvent(ctx); err != nil {
				return err
			}
			return m.valEpochWithEvent(ctx)
		})
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.cfg.SmokeTest {
			break
		}
	}
	return nil
}

// Fit trains the compiled model on the dataset for the configured epochs and
// returns the Tracker holding the aggregated run state.
//
// Cancellation sentinels returned by callbacks end their scope cooperatively
// and never surface as errors. Context cancellation (the interrupt path) is
// logged and treated as a graceful stop. Callback teardown runs on every
// exit path; any other error aborts the run and is returned.
func (m *Model) Fit(ctx context.Context, data *AutoDataset, cfg FitConfig) (*tracker.Tracker, error) {
	if !m.compiled {
		return nil, ErrNotCompiled
	}
	if data == nil || data.Train == nil {
		return nil, ErrNoTrainData
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m.data = data
	if err := data.Prepare(m.cfg.Accelerator); err != nil {
		return nil, fmt.Errorf("prepare data: %w", err)
	}

	if cfg.MaxEpochs < 1 {
		cfg.MaxEpochs = 1
	}
	if cfg.Restart {
		m.tracker.Reset()
	}

	if !cfg.DisableProgress {
		m.runner.Append(callbacks.NewProgress(m, cfg.Progress))
	}
	for _, spec := range cfg.Callbacks {
		switch cb := spec.(type) {
		case callbacks.Callback:
			m.runner.Append(cb)
		case string:
			built, err := callbacks.Build(cb, m)
			if err != nil {
				return nil, err
			}
			m.runner.Append(built)
		default:
			return nil, fmt.Errorf("callback must be a callbacks.Callback or registered name, got %T", spec)
		}
	}

	m.tracker.StepsPerEpoch = cfg.StepsPerEpoch
	m.tracker.MaxEpochs = cfg.MaxEpochs

	defer m.runner.Clean()

	err := m.runner.WithEvent(callbacks.EventFit, callbacks.ErrCancelFit, func() error {
		return m.runEpochs(ctx)
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		klog.Infof("interrupt detected, stopping training")
		err = nil
	}
	return m.tracker, err
}
