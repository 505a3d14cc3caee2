package model

import (
	"fmt"
	"iter"

	"github.com/arvindmuralie77/gradsflow/internal/optim"
)

// DataLoader yields one batch per iteration. A full pass over the loader is
// one epoch. Iteration is a black-box blocking call per batch; the engine
// introduces no parallelism around it.
type DataLoader = iter.Seq[any]

// SliceLoader adapts an in-memory batch slice to a DataLoader.
func SliceLoader(batches ...any) DataLoader {
	return func(yield func(any) bool) {
		for _, b := range batches {
			if !yield(b) {
				return
			}
		}
	}
}

// Pair is the common (inputs, target) batch layout understood by the default
// batch adapter.
type Pair struct {
	Inputs any
	Target any
}

// AutoDataset bundles the data loaders of a run: a required train loader, an
// optional val loader and an optional device-preparation hook.
type AutoDataset struct {
	Train DataLoader
	Val   DataLoader

	// Setup, when set, runs once per fit call before the first epoch,
	// e.g. to move data or samplers onto the accelerator's device.
	Setup func(accelerator Accelerator) error
}

// NewAutoDataset creates an AutoDataset; the train loader is mandatory.
func NewAutoDataset(train, val DataLoader) (*AutoDataset, error) {
	if train == nil {
		return nil, ErrNoTrainData
	}
	return &AutoDataset{Train: train, Val: val}, nil
}

// HasVal reports whether a validation loader was supplied.
func (d *AutoDataset) HasVal() bool {
	return d.Val != nil
}

// Prepare runs the dataset's device-preparation hook, if any.
func (d *AutoDataset) Prepare(accelerator Accelerator) error {
	if d.Setup == nil {
		return nil
	}
	return d.Setup(accelerator)
}

// BatchAdapter splits a raw batch into model inputs and target labels.
type BatchAdapter interface {
	Inputs(batch any) (any, error)
	Target(batch any) (any, error)
}

// DefaultAdapter understands the common batch layouts: Pair, a two-element
// pair ([2]any or []any), and a map with "inputs"/"target" keys.
type DefaultAdapter struct{}

// Inputs implements BatchAdapter.
func (DefaultAdapter) Inputs(batch any) (any, error) {
	return pick(batch, 0, "inputs")
}

// Target implements BatchAdapter.
func (DefaultAdapter) Target(batch any) (any, error) {
	return pick(batch, 1, "target")
}

func pick(batch any, index int, key string) (any, error) {
	switch b := batch.(type) {
	case Pair:
		if index == 0 {
			return b.Inputs, nil
		}
		return b.Target, nil
	case *Pair:
		if index == 0 {
			return b.Inputs, nil
		}
		return b.Target, nil
	case [2]any:
		return b[index], nil
	case []any:
		if len(b) > index {
			return b[index], nil
		}
	case map[string]any:
		if v, ok := b[key]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot extract %q from %T", ErrBadBatch, key, batch)
}

// Accelerator wraps device placement and distributed preparation of the
// optimizer. Opaque to the engine beyond Prepare.
type Accelerator interface {
	Prepare(opt optim.Optimizer) optim.Optimizer
}

// NoopAccelerator runs everything in place, on the host.
type NoopAccelerator struct{}

// Prepare implements Accelerator.
func (NoopAccelerator) Prepare(opt optim.Optimizer) optim.Optimizer { return opt }
