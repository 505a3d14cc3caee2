package callbacks

import (
	"errors"
	"fmt"

	"k8s.io/klog/v2"
)

// Runner is the ordered callback registry of one engine. It broadcasts every
// lifecycle event to all registered callbacks in registration order,
// synchronously on the calling goroutine, and owns the cancelable scope
// mechanics (WithEvent).
type Runner struct {
	trainer   Trainer
	callbacks []Callback
}

// NewRunner creates a runner bound to the given trainer with an initial
// callback list.
func NewRunner(trainer Trainer, cbs ...Callback) *Runner {
	return &Runner{trainer: trainer, callbacks: cbs}
}

// Append registers a callback after the existing ones. Registration is legal
// at any time, including mid-run.
func (r *Runner) Append(cb Callback) {
	klog.V(4).Infof("registering callback %T", cb)
	r.callbacks = append(r.callbacks, cb)
}

// Callbacks returns the registered callbacks in order.
func (r *Runner) Callbacks() []Callback {
	return r.callbacks
}

// each dispatches one hook to every callback in order. The first error stops
// the broadcast and propagates.
func (r *Runner) each(hook func(cb Callback) error) error {
	for _, cb := range r.callbacks {
		if err := hook(cb); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) OnFitStart() error        { return r.each(Callback.OnFitStart) }
func (r *Runner) OnFitEnd() error          { return r.each(Callback.OnFitEnd) }
func (r *Runner) OnEpochStart() error      { return r.each(Callback.OnEpochStart) }
func (r *Runner) OnEpochEnd() error        { return r.each(Callback.OnEpochEnd) }
func (r *Runner) OnTrainEpochStart() error { return r.each(Callback.OnTrainEpochStart) }
func (r *Runner) OnTrainEpochEnd() error   { return r.each(Callback.OnTrainEpochEnd) }
func (r *Runner) OnValEpochStart() error   { return r.each(Callback.OnValEpochStart) }
func (r *Runner) OnValEpochEnd() error     { return r.each(Callback.OnValEpochEnd) }
func (r *Runner) OnTrainStepStart() error  { return r.each(Callback.OnTrainStepStart) }
func (r *Runner) OnValStepStart() error    { return r.each(Callback.OnValStepStart) }
func (r *Runner) OnForwardStart() error    { return r.each(Callback.OnForwardStart) }
func (r *Runner) OnForwardEnd() error      { return r.each(Callback.OnForwardEnd) }

func (r *Runner) OnTrainStepEnd(p Payload) error {
	return r.each(func(cb Callback) error { return cb.OnTrainStepEnd(p) })
}

func (r *Runner) OnValStepEnd(p Payload) error {
	return r.each(func(cb Callback) error { return cb.OnValStepEnd(p) })
}

// WithEvent runs one cancelable scope: the event's start hook, then body,
// then the event's end hook. The end hook runs even when the start hook or
// body failed. An error matching cancel, no matter which of the three phases
// produced it, is swallowed here; everything else propagates.
func (r *Runner) WithEvent(event Event, cancel error, body func() error) error {
	err := r.fire(event, true)
	if err == nil {
		err = body()
	}
	endErr := r.fire(event, false)

	if err != nil && !errors.Is(err, cancel) {
		return err
	}
	if endErr != nil && !errors.Is(endErr, cancel) {
		return endErr
	}
	return nil
}

func (r *Runner) fire(event Event, start bool) error {
	switch event {
	case EventFit:
		if start {
			return r.OnFitStart()
		}
		return r.OnFitEnd()
	case EventEpoch:
		if start {
			return r.OnEpochStart()
		}
		return r.OnEpochEnd()
	}
	return fmt.Errorf("no scoped event named %q", event)
}

// Clean tears down every callback in registration order. It is invoked once
// after fit completes, whether the run finished, was cancelled or was
// interrupted.
func (r *Runner) Clean() {
	for _, cb := range r.callbacks {
		cb.Clean()
	}
}
