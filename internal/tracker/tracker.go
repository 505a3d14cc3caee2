package tracker

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Tracking modes.
const (
	ModeTrain = "train"
	ModeVal   = "val"
)

// Logical views resolvable through Tracker.Value.
const (
	KeyMetrics = "metrics"
	KeyLoss    = "loss"
)

// Record is one append-only log entry. Key encodes "mode/loss" or
// "mode/metric-name"; Epoch is the epoch the value was appended in.
// Records are immutable once appended.
type Record struct {
	Epoch int     `csv:"epoch"`
	Key   string  `csv:"key"`
	Value float64 `csv:"value"`
}

// Tracker tracks loss and metrics during a fit run.
//
// It owns one TrackingValues bundle per mode, the epoch counters, and the
// flat step-level log. The engine mutates it through TrackLoss/TrackMetrics
// (via the train-eval callback) and resets it between independent runs.
type Tracker struct {
	Train *TrackingValues
	Val   *TrackingValues

	CurrentEpoch  int
	MaxEpochs     int
	StepsPerEpoch int // 0 means a full pass over the loader

	logs []Record
}

// New returns a Tracker with fresh accumulators.
func New() *Tracker {
	return &Tracker{
		Train: NewTrackingValues(),
		Val:   NewTrackingValues(),
	}
}

// Mode resolves a mode name to its accumulator bundle.
func (t *Tracker) Mode(mode string) (*TrackingValues, error) {
	switch mode {
	case ModeTrain:
		return t.Train, nil
	case ModeVal:
		return t.Val, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Value resolves one of the four logical views:
//
//	"train" / "val" → the mode's *TrackingValues
//	"metrics"       → map[string]map[string]float64 of per-mode epoch averages
//	"loss"          → map[string]float64 of per-mode loss averages
//
// Any other key fails with ErrUnknownKey.
func (t *Tracker) Value(key string) (any, error) {
	switch key {
	case ModeTrain, ModeVal:
		return t.Mode(key)
	case KeyMetrics:
		return map[string]map[string]float64{
			ModeTrain: t.TrainMetrics(),
			ModeVal:   t.ValMetrics(),
		}, nil
	case KeyLoss:
		return map[string]float64{
			ModeTrain: t.TrainLoss(),
			ModeVal:   t.ValLoss(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// TrainLoss returns the epoch average of the train loss.
func (t *Tracker) TrainLoss() float64 { return t.Train.Loss.Avg }

// ValLoss returns the epoch average of the val loss.
func (t *Tracker) ValLoss() float64 { return t.Val.Loss.Avg }

// TrainMetrics returns the epoch averages of the train metrics.
func (t *Tracker) TrainMetrics() map[string]float64 { return t.Train.MetricAverages() }

// ValMetrics returns the epoch averages of the val metrics.
func (t *Tracker) ValMetrics() map[string]float64 { return t.Val.MetricAverages() }

// Logs returns the append-only step log.
func (t *Tracker) Logs() []Record {
	return t.logs
}

func (t *Tracker) appendLog(key string, value float64) {
	t.logs = append(t.logs, Record{Epoch: t.CurrentEpoch, Key: key, Value: value})
}

// TrackLoss folds one step loss into the mode's epoch average and appends a
// "{mode}/loss" record. The loss may be any scalar-like value accepted by
// Item.
func (t *Tracker) TrackLoss(loss any, mode string) error {
	tv, err := t.Mode(mode)
	if err != nil {
		return err
	}
	x, err := Item(loss)
	if err != nil {
		return err
	}
	tv.UpdateLoss(x)
	t.appendLog(mode+"/loss", x)
	return nil
}

// TrackMetrics folds step metric values into the mode's epoch averages and
// appends one "{mode}/{name}" record per metric with the raw step value.
func (t *Tracker) TrackMetrics(metrics map[string]float64, mode string) error {
	tv, err := t.Mode(mode)
	if err != nil {
		return err
	}
	tv.UpdateMetrics(metrics)
	for _, name := range sortedKeys(metrics) {
		t.appendLog(mode+"/"+name, metrics[name])
	}
	return nil
}

// Reset reinitializes epoch counters, both accumulator bundles and the log.
// The bundles are replaced wholesale so that references handed out earlier
// never alias the new run's state. Reset is idempotent.
func (t *Tracker) Reset() {
	klog.V(3).Info("resetting tracker")
	t.MaxEpochs = 0
	t.CurrentEpoch = 0
	t.StepsPerEpoch = 0
	t.Train = NewTrackingValues()
	t.Val = NewTrackingValues()
	t.logs = nil
}
