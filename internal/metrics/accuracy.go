package metrics

import (
	"errors"
	"fmt"
)

// ErrShape is returned when predictions and targets disagree in length or
// come in an unsupported layout.
var ErrShape = errors.New("predictions and targets are incompatible")

// Accuracy is the fraction of samples whose predicted class matches the
// target class, accumulated over an epoch.
//
// Predictions may be per-class scores ([][]float64 or [][]float32, argmax is
// taken per row) or already-decided class ids ([]int). Targets are class ids
// ([]int, []int64 or []float64).
type Accuracy struct {
	correct int
	total   int
}

// NewAccuracy creates an empty accuracy accumulator.
func NewAccuracy() *Accuracy {
	return &Accuracy{}
}

// Name implements Metric.
func (a *Accuracy) Name() string { return "accuracy" }

// Update folds one batch of predictions and targets into the counts.
func (a *Accuracy) Update(preds, target any) error {
	p, err := predictedClasses(preds)
	if err != nil {
		return err
	}
	labels, err := targetClasses(target)
	if err != nil {
		return err
	}
	if len(p) != len(labels) {
		return fmt.Errorf("%w: %d predictions vs %d targets", ErrShape, len(p), len(labels))
	}

	for i, c := range p {
		if c == labels[i] {
			a.correct++
		}
	}
	a.total += len(p)
	return nil
}

// Compute returns the accumulated accuracy, 0 before any update.
func (a *Accuracy) Compute() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.correct) / float64(a.total)
}

// Reset clears the accumulated counts.
func (a *Accuracy) Reset() {
	a.correct = 0
	a.total = 0
}

func predictedClasses(preds any) ([]int, error) {
	switch p := preds.(type) {
	case []int:
		return p, nil
	case [][]float64:
		out := make([]int, len(p))
		for i, row := range p {
			out[i] = argmax64(row)
		}
		return out, nil
	case [][]float32:
		out := make([]int, len(p))
		for i, row := range p {
			out[i] = argmax32(row)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported prediction type %T", ErrShape, preds)
}

func targetClasses(target any) ([]int, error) {
	switch tg := target.(type) {
	case []int:
		return tg, nil
	case []int64:
		out := make([]int, len(tg))
		for i, v := range tg {
			out[i] = int(v)
		}
		return out, nil
	case []float64:
		out := make([]int, len(tg))
		for i, v := range tg {
			out[i] = int(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported target type %T", ErrShape, target)
}

func argmax64(row []float64) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}

func argmax32(row []float32) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}
