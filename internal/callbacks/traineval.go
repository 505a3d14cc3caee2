package callbacks

import "github.com/arvindmuralie77/gradsflow/internal/tracker"

// TrainEval is the always-installed callback that turns step outputs into
// optimization and tracking:
//
//   - train step start: zero the optimizer's gradients
//   - train step end: backprop the loss (when it supports it), step the
//     optimizer, feed the tracker
//   - val step end: feed the tracker
//   - train epoch start: switch the learner to train mode, reset metric
//     accumulators for the new epoch
//   - val epoch start: switch the learner to eval mode
//   - epoch end: step the learning-rate schedulers
//
// Keeping this logic in a callback keeps the engine a pure sequencer and
// makes the optimization policy replaceable.
type TrainEval struct {
	Base
	trainer Trainer
}

// NewTrainEval creates the bookkeeping callback for the given trainer.
func NewTrainEval(trainer Trainer) *TrainEval {
	return &TrainEval{trainer: trainer}
}

func (c *TrainEval) OnTrainEpochStart() error {
	c.trainer.SetTrainMode(true)
	c.trainer.ResetMetrics()
	return nil
}

func (c *TrainEval) OnValEpochStart() error {
	c.trainer.SetTrainMode(false)
	return nil
}

func (c *TrainEval) OnTrainStepStart() error {
	if opt := c.trainer.Optimizer(); opt != nil {
		opt.ZeroGrad()
	}
	return nil
}

func (c *TrainEval) OnTrainStepEnd(p Payload) error {
	if b, ok := p.Output.RawLoss.(Backpropagator); ok {
		b.Backward()
	}
	if opt := c.trainer.Optimizer(); opt != nil {
		opt.Step()
	}
	return c.track(p, tracker.ModeTrain)
}

func (c *TrainEval) OnValStepEnd(p Payload) error {
	return c.track(p, tracker.ModeVal)
}

func (c *TrainEval) OnEpochEnd() error {
	for _, s := range c.trainer.Schedulers() {
		s.Step()
	}
	return nil
}

func (c *TrainEval) track(p Payload, mode string) error {
	t := c.trainer.Tracker()
	if err := t.TrackLoss(p.Output.Loss, mode); err != nil {
		return err
	}
	if len(p.Output.Metrics) == 0 {
		return nil
	}
	return t.TrackMetrics(p.Output.Metrics, mode)
}
