package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvindmuralie77/gradsflow/internal/callbacks"
	"github.com/arvindmuralie77/gradsflow/internal/optim"
)

// identityLearner echoes its inputs and exposes one parameter.
type identityLearner struct {
	param     *optim.Parameter
	trainMode bool
}

func newIdentityLearner() *identityLearner {
	return &identityLearner{param: optim.NewParameter("w", 1)}
}

func (l *identityLearner) Forward(inputs any) any         { return inputs }
func (l *identityLearner) Train(training bool)            { l.trainMode = training }
func (l *identityLearner) Parameters() []*optim.Parameter { return []*optim.Parameter{l.param} }

// hookCounter counts every hook invocation by name.
type hookCounter struct {
	callbacks.Base
	counts map[string]int
	cleans int

	// optional fault injection
	failHook string
	failErr  error
	failOnce bool
	failed   bool
}

func newHookCounter() *hookCounter {
	return &hookCounter{counts: map[string]int{}}
}

func (h *hookCounter) bump(hook string) error {
	h.counts[hook]++
	if hook == h.failHook && (!h.failOnce || !h.failed) {
		h.failed = true
		return h.failErr
	}
	return nil
}

func (h *hookCounter) OnFitStart() error                      { return h.bump("fit_start") }
func (h *hookCounter) OnFitEnd() error                        { return h.bump("fit_end") }
func (h *hookCounter) OnEpochStart() error                    { return h.bump("epoch_start") }
func (h *hookCounter) OnEpochEnd() error                      { return h.bump("epoch_end") }
func (h *hookCounter) OnTrainEpochStart() error               { return h.bump("train_epoch_start") }
func (h *hookCounter) OnTrainEpochEnd() error                 { return h.bump("train_epoch_end") }
func (h *hookCounter) OnValEpochStart() error                 { return h.bump("val_epoch_start") }
func (h *hookCounter) OnValEpochEnd() error                   { return h.bump("val_epoch_end") }
func (h *hookCounter) OnTrainStepStart() error                { return h.bump("train_step_start") }
func (h *hookCounter) OnTrainStepEnd(callbacks.Payload) error { return h.bump("train_step_end") }
func (h *hookCounter) OnValStepStart() error                  { return h.bump("val_step_start") }
func (h *hookCounter) OnValStepEnd(callbacks.Payload) error   { return h.bump("val_step_end") }
func (h *hookCounter) OnForwardStart() error                  { return h.bump("forward_start") }
func (h *hookCounter) OnForwardEnd() error                    { return h.bump("forward_end") }
func (h *hookCounter) Clean()                                 { h.cleans++ }

func pairBatches(n int) []any {
	batches := make([]any, n)
	for i := range batches {
		batches[i] = Pair{Inputs: []float64{1.0}, Target: []float64{0.0}}
	}
	return batches
}

func compiledModel(t *testing.T) *Model {
	t.Helper()
	m := New(newIdentityLearner(), DefaultConfig())
	require.NoError(t, m.Compile(CompileConfig{Loss: "mse", Optimizer: "sgd", LearningRate: 0.1}))
	return m
}

func fitCfg(cbs ...any) FitConfig {
	return FitConfig{DisableProgress: true, Callbacks: cbs}
}

func TestFit_RequiresCompile(t *testing.T) {
	m := New(newIdentityLearner(), DefaultConfig())
	data, err := NewAutoDataset(SliceLoader(pairBatches(1)...), nil)
	require.NoError(t, err)

	_, err = m.Fit(context.Background(), data, fitCfg())
	assert.ErrorIs(t, err, ErrNotCompiled)
}

func TestFit_EpochAndHookCounts(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(4)...), nil)
	require.NoError(t, err)

	counter := newHookCounter()
	cfg := fitCfg(counter)
	cfg.MaxEpochs = 3

	tr, err := m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, counter.counts["fit_start"])
	assert.Equal(t, 1, counter.counts["fit_end"])
	assert.Equal(t, 3, counter.counts["epoch_start"])
	assert.Equal(t, 3, counter.counts["epoch_end"])
	assert.Equal(t, 3, counter.counts["train_epoch_start"])
	assert.Equal(t, 3, counter.counts["train_epoch_end"])
	assert.Equal(t, 12, counter.counts["train_step_start"])
	assert.Equal(t, 12, counter.counts["forward_start"])

	// No validation loader: zero val hooks of any kind.
	assert.Zero(t, counter.counts["val_epoch_start"])
	assert.Zero(t, counter.counts["val_epoch_end"])
	assert.Zero(t, counter.counts["val_step_start"])

	assert.Equal(t, 1, counter.cleans)
	assert.Equal(t, 2, tr.CurrentEpoch)
	assert.True(t, tr.Train.Loss.Computed)
}

func TestFit_ValidationHooks(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(2)...), SliceLoader(pairBatches(3)...))
	require.NoError(t, err)

	counter := newHookCounter()
	cfg := fitCfg(counter)
	cfg.MaxEpochs = 2

	tr, err := m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, counter.counts["val_epoch_start"])
	assert.Equal(t, 2, counter.counts["val_epoch_end"])
	assert.Equal(t, 6, counter.counts["val_step_end"])
	assert.True(t, tr.Val.Loss.Computed)
}

func TestFit_StepsPerEpochBoundary(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(5)...), nil)
	require.NoError(t, err)

	counter := newHookCounter()
	cfg := fitCfg(counter)
	cfg.MaxEpochs = 1
	cfg.StepsPerEpoch = 2

	_, err = m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)

	// Exactly StepsPerEpoch steps, never an off-by-one extra.
	assert.Equal(t, 2, counter.counts["train_step_end"])
}

func TestFit_EpochCancelDoesNotCancelFit(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(3)...), nil)
	require.NoError(t, err)

	canceller := newHookCounter()
	canceller.failHook = "train_step_end"
	canceller.failErr = callbacks.ErrCancelEpoch
	canceller.failOnce = true

	counter := newHookCounter()
	cfg := fitCfg(canceller, counter)
	cfg.MaxEpochs = 2

	_, err = m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)

	// Epoch 0 stops after its first step, epoch 1 runs all three. The
	// cancelling callback sees its own step plus epoch 1's three.
	assert.Equal(t, 4, canceller.counts["train_step_end"])
	assert.Equal(t, 2, counter.counts["epoch_start"])
	assert.Equal(t, 2, counter.counts["epoch_end"])
	assert.Equal(t, 1, counter.cleans)
}

func TestFit_FitCancelStopsRun(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(2)...), nil)
	require.NoError(t, err)

	canceller := newHookCounter()
	canceller.failHook = "epoch_end"
	canceller.failErr = callbacks.ErrCancelFit

	counter := newHookCounter()
	cfg := fitCfg(canceller, counter)
	cfg.MaxEpochs = 5

	_, err = m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)

	// The first epoch end cancelled the whole fit; teardown still ran.
	assert.Equal(t, 1, counter.counts["epoch_start"])
	assert.Equal(t, 1, counter.counts["fit_end"])
	assert.Equal(t, 1, counter.cleans)
}

func TestFit_CallbackFaultAborts(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(2)...), nil)
	require.NoError(t, err)

	fault := assert.AnError
	bad := newHookCounter()
	bad.failHook = "train_step_start"
	bad.failErr = fault

	cfg := fitCfg(bad)
	cfg.MaxEpochs = 3

	_, err = m.Fit(context.Background(), data, cfg)
	assert.ErrorIs(t, err, fault)
	// Teardown is guaranteed even on faults.
	assert.Equal(t, 1, bad.cleans)
}

func TestFit_ResumeAndRestart(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(2)...), nil)
	require.NoError(t, err)

	cfg := fitCfg()
	cfg.MaxEpochs = 2

	tr, err := m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)
	logsAfterFirst := len(tr.Logs())
	require.Equal(t, 1, tr.CurrentEpoch)

	// Resume: history and epoch counter carry over, the run continues from
	// the tracker's current epoch.
	cfg.MaxEpochs = 3
	tr, err = m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.CurrentEpoch)
	assert.Greater(t, len(tr.Logs()), logsAfterFirst)

	// Restart: clean tracker.
	cfg.Restart = true
	cfg.MaxEpochs = 1
	tr, err = m.Fit(context.Background(), data, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.CurrentEpoch)
	assert.Len(t, tr.Logs(), 2) // one epoch of two steps, loss only
}

func TestFit_SmokeTestShortCircuits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmokeTest = true
	m := New(newIdentityLearner(), cfg)
	require.NoError(t, m.Compile(CompileConfig{Loss: "mse"}))

	data, err := NewAutoDataset(SliceLoader(pairBatches(10)...), nil)
	require.NoError(t, err)

	counter := newHookCounter()
	fit := fitCfg(counter)
	fit.MaxEpochs = 8

	_, err = m.Fit(context.Background(), data, fit)
	require.NoError(t, err)

	assert.Equal(t, 1, counter.counts["epoch_start"])
	assert.Equal(t, 1, counter.counts["train_step_end"])
}

func TestFit_ContextCancelIsGraceful(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(3)...), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // interrupt before the first step

	counter := newHookCounter()
	cfg := fitCfg(counter)
	cfg.MaxEpochs = 4

	tr, err := m.Fit(ctx, data, cfg)
	require.NoError(t, err)
	require.NotNil(t, tr)
	// Graceful stop: no steps ran, teardown did.
	assert.Zero(t, counter.counts["train_step_end"])
	assert.Equal(t, 1, counter.cleans)
}

func TestFit_CallbacksByName(t *testing.T) {
	m := compiledModel(t)
	data, err := NewAutoDataset(SliceLoader(pairBatches(1)...), nil)
	require.NoError(t, err)

	_, err = m.Fit(context.Background(), data, fitCfg("does_not_exist"))
	assert.ErrorIs(t, err, callbacks.ErrUnknownCallback)

	_, err = m.Fit(context.Background(), data, fitCfg("early_stopping"))
	assert.NoError(t, err)
}

func TestFit_PreparesData(t *testing.T) {
	m := compiledModel(t)

	prepared := 0
	data, err := NewAutoDataset(SliceLoader(pairBatches(1)...), nil)
	require.NoError(t, err)
	data.Setup = func(acc Accelerator) error {
		prepared++
		assert.NotNil(t, acc)
		return nil
	}

	_, err = m.Fit(context.Background(), data, fitCfg())
	require.NoError(t, err)
	assert.Equal(t, 1, prepared)
}

func TestCompile_IncrementalRecompile(t *testing.T) {
	m := New(newIdentityLearner(), DefaultConfig())

	require.NoError(t, m.Compile(CompileConfig{Loss: "mse", Optimizer: "sgd"}))
	firstOpt := m.Optimizer()
	require.NotNil(t, firstOpt)

	// Empty slots leave the engine state untouched.
	require.NoError(t, m.Compile(CompileConfig{}))
	assert.Same(t, firstOpt, m.Optimizer())
	assert.True(t, m.Compiled())
}

func TestCompile_Errors(t *testing.T) {
	m := New(newIdentityLearner(), DefaultConfig())

	assert.ErrorIs(t, m.Compile(CompileConfig{Loss: "hinge"}), ErrUnknownLoss)
	assert.ErrorIs(t, m.Compile(CompileConfig{Optimizer: "lamb"}), ErrUnknownOptimizer)
	assert.Error(t, m.Compile(CompileConfig{Optimizer: 42}))

	// A string optimizer needs parameters from the learner.
	plain := struct{ Learner }{Learner: learnerFunc(func(in any) any { return in })}
	m2 := New(plain, DefaultConfig())
	assert.ErrorIs(t, m2.Compile(CompileConfig{Optimizer: "sgd"}), ErrNoParams)
}

func TestCompile_SchedulersAndMetrics(t *testing.T) {
	m := New(newIdentityLearner(), DefaultConfig())
	err := m.Compile(CompileConfig{
		Loss:            "mse",
		Optimizer:       "adam",
		Schedulers:      []any{"steplr"},
		SchedulerConfig: []map[string]any{{"step_size": 2, "gamma": 0.5}},
		Metrics:         []any{"accuracy"},
	})
	require.NoError(t, err)
	assert.Len(t, m.Schedulers(), 1)
	assert.Equal(t, 1, m.metrics.Len())
}

// learnerFunc adapts a function to the Learner interface.
type learnerFunc func(inputs any) any

func (f learnerFunc) Forward(inputs any) any { return f(inputs) }
