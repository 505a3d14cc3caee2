package callbacks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvindmuralie77/gradsflow/internal/optim"
	"github.com/arvindmuralie77/gradsflow/internal/tracker"
)

// fakeTrainer satisfies Trainer for callback tests.
type fakeTrainer struct {
	tr           *tracker.Tracker
	opt          optim.Optimizer
	scheds       []optim.Scheduler
	trainMode    bool
	metricsReset int
}

func newFakeTrainer() *fakeTrainer {
	return &fakeTrainer{tr: tracker.New()}
}

func (f *fakeTrainer) Tracker() *tracker.Tracker     { return f.tr }
func (f *fakeTrainer) Optimizer() optim.Optimizer    { return f.opt }
func (f *fakeTrainer) Schedulers() []optim.Scheduler { return f.scheds }
func (f *fakeTrainer) SetTrainMode(training bool)    { f.trainMode = training }
func (f *fakeTrainer) ResetMetrics()                 { f.metricsReset++ }

// recorder notes every hook it receives and can fail on demand.
type recorder struct {
	name   string
	events *[]string
	errOn  map[string]error
	cleans int
}

func newRecorder(name string, events *[]string) *recorder {
	return &recorder{name: name, events: events, errOn: map[string]error{}}
}

func (r *recorder) note(hook string) error {
	*r.events = append(*r.events, r.name+":"+hook)
	return r.errOn[hook]
}

func (r *recorder) OnFitStart() error            { return r.note("fit_start") }
func (r *recorder) OnFitEnd() error              { return r.note("fit_end") }
func (r *recorder) OnEpochStart() error          { return r.note("epoch_start") }
func (r *recorder) OnEpochEnd() error            { return r.note("epoch_end") }
func (r *recorder) OnTrainEpochStart() error     { return r.note("train_epoch_start") }
func (r *recorder) OnTrainEpochEnd() error       { return r.note("train_epoch_end") }
func (r *recorder) OnValEpochStart() error       { return r.note("val_epoch_start") }
func (r *recorder) OnValEpochEnd() error         { return r.note("val_epoch_end") }
func (r *recorder) OnTrainStepStart() error      { return r.note("train_step_start") }
func (r *recorder) OnTrainStepEnd(Payload) error { return r.note("train_step_end") }
func (r *recorder) OnValStepStart() error        { return r.note("val_step_start") }
func (r *recorder) OnValStepEnd(Payload) error   { return r.note("val_step_end") }
func (r *recorder) OnForwardStart() error        { return r.note("forward_start") }
func (r *recorder) OnForwardEnd() error          { return r.note("forward_end") }
func (r *recorder) Clean()                       { r.cleans++ }

func TestRunner_DispatchOrder(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	b := newRecorder("b", &events)

	r := NewRunner(newFakeTrainer(), a)
	r.Append(b)

	require.NoError(t, r.OnEpochStart())
	require.NoError(t, r.OnTrainStepEnd(Payload{}))

	assert.Equal(t, []string{
		"a:epoch_start", "b:epoch_start",
		"a:train_step_end", "b:train_step_end",
	}, events)
}

func TestRunner_FirstErrorStopsBroadcast(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	b := newRecorder("b", &events)
	boom := fmt.Errorf("boom")
	a.errOn["epoch_start"] = boom

	r := NewRunner(newFakeTrainer(), a, b)
	assert.ErrorIs(t, r.OnEpochStart(), boom)
	assert.Equal(t, []string{"a:epoch_start"}, events)
}

func TestRunner_WithEventRunsStartBodyEnd(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	r := NewRunner(newFakeTrainer(), a)

	ran := false
	require.NoError(t, r.WithEvent(EventEpoch, ErrCancelEpoch, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
	assert.Equal(t, []string{"a:epoch_start", "a:epoch_end"}, events)
}

func TestRunner_WithEventSwallowsOwnSentinel(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	r := NewRunner(newFakeTrainer(), a)

	err := r.WithEvent(EventEpoch, ErrCancelEpoch, func() error {
		return fmt.Errorf("step requested stop: %w", ErrCancelEpoch)
	})
	require.NoError(t, err)
	// End hook still ran after cancellation.
	assert.Equal(t, []string{"a:epoch_start", "a:epoch_end"}, events)
}

func TestRunner_WithEventPropagatesForeignErrors(t *testing.T) {
	r := NewRunner(newFakeTrainer())

	// The fit sentinel escapes the epoch scope untouched: only the owning
	// frame intercepts its signal.
	err := r.WithEvent(EventEpoch, ErrCancelEpoch, func() error { return ErrCancelFit })
	assert.ErrorIs(t, err, ErrCancelFit)

	fault := errors.New("collaborator fault")
	err = r.WithEvent(EventEpoch, ErrCancelEpoch, func() error { return fault })
	assert.ErrorIs(t, err, fault)
}

func TestRunner_WithEventNestedScopes(t *testing.T) {
	r := NewRunner(newFakeTrainer())

	// Epoch cancel must not leak into the fit scope.
	err := r.WithEvent(EventFit, ErrCancelFit, func() error {
		if err := r.WithEvent(EventEpoch, ErrCancelEpoch, func() error {
			return ErrCancelEpoch
		}); err != nil {
			return err
		}
		return nil
	})
	require.NoError(t, err)

	// Fit cancel raised inside the epoch scope crosses it and is absorbed
	// by the fit scope.
	err = r.WithEvent(EventFit, ErrCancelFit, func() error {
		return r.WithEvent(EventEpoch, ErrCancelEpoch, func() error {
			return ErrCancelFit
		})
	})
	require.NoError(t, err)
}

func TestRunner_WithEventEndHookCancel(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	a.errOn["epoch_end"] = ErrCancelFit
	r := NewRunner(newFakeTrainer(), a)

	// A fit sentinel from the epoch end hook escapes the epoch scope.
	err := r.WithEvent(EventEpoch, ErrCancelEpoch, func() error { return nil })
	assert.ErrorIs(t, err, ErrCancelFit)
}

func TestRunner_CleanRunsForAll(t *testing.T) {
	var events []string
	a := newRecorder("a", &events)
	b := newRecorder("b", &events)
	r := NewRunner(newFakeTrainer(), a, b)

	r.Clean()
	assert.Equal(t, 1, a.cleans)
	assert.Equal(t, 1, b.cleans)
}

func TestRunner_UnknownEvent(t *testing.T) {
	r := NewRunner(newFakeTrainer())
	err := r.WithEvent(Event("forward"), nil, func() error { return nil })
	assert.Error(t, err)
}
