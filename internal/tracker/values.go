// Package tracker aggregates the scalar state of a training run: rolling loss
// and metric averages per mode, epoch counters, and a flat append-only log of
// every tracked value.
//
// A Tracker is owned by exactly one engine and mutated only from the fit
// loop's goroutine; no locking happens here.
package tracker

import "sort"

// Value maintains the running average of one scalar stream.
//
// Avg is only meaningful once Computed is true, i.e. after the first Update.
type Value struct {
	Sum      float64
	Count    int
	Avg      float64
	Computed bool
}

// Update folds one observation into the running average.
func (v *Value) Update(x float64) {
	v.Sum += x
	v.Count++
	v.Avg = v.Sum / float64(v.Count)
	v.Computed = true
}

// TrackingValues bundles the accumulators of one mode (train or val): the
// epoch loss average, one accumulator per metric, and the current step index.
type TrackingValues struct {
	Loss    *Value
	Metrics map[string]*Value
	Steps   int

	// metric names in first-seen order, so summary columns are stable
	order []string
}

// NewTrackingValues returns a fresh, empty accumulator bundle.
func NewTrackingValues() *TrackingValues {
	return &TrackingValues{
		Loss:    &Value{},
		Metrics: make(map[string]*Value),
	}
}

// UpdateLoss incorporates one step loss into the epoch average.
func (tv *TrackingValues) UpdateLoss(loss float64) {
	tv.Loss.Update(loss)
}

// UpdateMetrics folds a batch of metric values into their accumulators,
// lazily creating an accumulator the first time a metric name appears.
func (tv *TrackingValues) UpdateMetrics(metrics map[string]float64) {
	for _, name := range sortedKeys(metrics) {
		m, ok := tv.Metrics[name]
		if !ok {
			m = &Value{}
			tv.Metrics[name] = m
			tv.order = append(tv.order, name)
		}
		m.Update(metrics[name])
	}
}

// MetricNames returns the tracked metric names in first-seen order.
func (tv *TrackingValues) MetricNames() []string {
	names := make([]string, len(tv.order))
	copy(names, tv.order)
	return names
}

// sortedKeys makes the first-seen order deterministic when several new
// metrics arrive in a single update.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MetricAverages returns the current epoch average of every tracked metric.
func (tv *TrackingValues) MetricAverages() map[string]float64 {
	out := make(map[string]float64, len(tv.Metrics))
	for name, v := range tv.Metrics {
		out[name] = v.Avg
	}
	return out
}
