// Package metrics defines the metric collaborator contract plus a registry
// resolving string identifiers to metric constructors.
//
// Metrics accumulate across the steps of an epoch; the engine resets them at
// every train epoch start and samples Compute after every step.
package metrics

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownMetric is returned when a metric identifier is not registered.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric accumulates a quality score over prediction/target pairs.
type Metric interface {
	// Name is the key the metric is tracked and reported under.
	Name() string

	// Update folds one batch of predictions and targets into the state.
	Update(preds, target any) error

	// Compute returns the score over everything seen since the last Reset.
	Compute() float64

	// Reset clears the accumulated state.
	Reset()
}

// Collection groups metrics so the engine can drive them as one unit.
type Collection struct {
	metrics []Metric
}

// NewCollection creates a collection over the given metrics.
func NewCollection(ms ...Metric) *Collection {
	return &Collection{metrics: ms}
}

// Add appends a metric to the collection.
func (c *Collection) Add(m Metric) {
	c.metrics = append(c.metrics, m)
}

// Len reports the number of metrics in the collection.
func (c *Collection) Len() int {
	return len(c.metrics)
}

// Update folds one batch into every metric. The first failing metric aborts.
func (c *Collection) Update(preds, target any) error {
	for _, m := range c.metrics {
		if err := m.Update(preds, target); err != nil {
			return fmt.Errorf("metric %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Compute returns the current score of every metric keyed by name.
func (c *Collection) Compute() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Compute()
	}
	return out
}

// Reset clears every metric in the collection.
func (c *Collection) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
}

// Factory constructs a fresh metric instance.
type Factory func() Metric

var registry = map[string]Factory{}

// Register makes a metric constructible by name through Build.
func Register(name string, f Factory) {
	registry[name] = f
}

// Build constructs the metric registered under name.
func Build(name string) (Metric, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownMetric, name, Available())
	}
	return f(), nil
}

// Available lists the registered metric names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("accuracy", func() Metric { return NewAccuracy() })
}
