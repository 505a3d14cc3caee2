package callbacks

import (
	"math"

	"github.com/arvindmuralie77/gradsflow/internal/tracker"
	"k8s.io/klog/v2"
)

// EarlyStoppingConfig tunes the early stopping policy.
type EarlyStoppingConfig struct {
	// Patience is the number of consecutive non-improving epochs tolerated
	// before the run is stopped. Defaults to 3.
	Patience int
	// MinDelta is the minimum loss decrease that counts as an improvement.
	MinDelta float64
	// Monitor selects the watched loss stream, "val" or "train".
	// Defaults to "val", falling back to train loss while no validation
	// loss has been computed.
	Monitor string
}

// EarlyStopping cancels the fit once the monitored loss has stopped
// improving. It signals through ErrCancelFit, so stopping is a cooperative
// cancellation, not a failure.
type EarlyStopping struct {
	Base
	trainer Trainer
	cfg     EarlyStoppingConfig

	best float64
	bad  int
}

// NewEarlyStopping creates an early stopping watchdog for the given trainer.
func NewEarlyStopping(trainer Trainer, cfg EarlyStoppingConfig) *EarlyStopping {
	if cfg.Patience <= 0 {
		cfg.Patience = 3
	}
	if cfg.Monitor == "" {
		cfg.Monitor = tracker.ModeVal
	}
	return &EarlyStopping{trainer: trainer, cfg: cfg, best: math.Inf(1)}
}

func (c *EarlyStopping) OnFitStart() error {
	c.best = math.Inf(1)
	c.bad = 0
	return nil
}

func (c *EarlyStopping) OnEpochEnd() error {
	current := c.monitored()

	if c.best-current > c.cfg.MinDelta {
		c.best = current
		c.bad = 0
		return nil
	}

	c.bad++
	if c.bad >= c.cfg.Patience {
		klog.V(2).Infof("early stopping: no %s loss improvement for %d epochs", c.cfg.Monitor, c.bad)
		return ErrCancelFit
	}
	return nil
}

func (c *EarlyStopping) monitored() float64 {
	t := c.trainer.Tracker()
	if c.cfg.Monitor == tracker.ModeVal && t.Val.Loss.Computed {
		return t.ValLoss()
	}
	return t.TrainLoss()
}
