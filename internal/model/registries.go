package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arvindmuralie77/gradsflow/internal/optim"
)

// Registry errors.
var (
	ErrUnknownLoss      = errors.New("unknown loss")
	ErrUnknownOptimizer = errors.New("unknown optimizer")
	ErrUnknownScheduler = errors.New("unknown scheduler")
)

// Loss computes a loss value for one prediction/target pair. The returned
// value only needs to be scalar-like (see tracker.Item); values implementing
// callbacks.Backpropagator additionally drive the backward pass.
type Loss interface {
	Compute(preds, target any) any
}

// LossFunc adapts a plain function to the Loss interface.
type LossFunc func(preds, target any) any

// Compute implements Loss.
func (f LossFunc) Compute(preds, target any) any { return f(preds, target) }

// LossFactory builds a loss from its configuration map.
type LossFactory func(cfg map[string]any) (Loss, error)

// OptimizerFactory builds an optimizer over the learner's parameters.
type OptimizerFactory func(params []*optim.Parameter, lr float64, cfg map[string]any) (optim.Optimizer, error)

// SchedulerFactory builds a scheduler over the compiled optimizer.
type SchedulerFactory func(opt optim.Optimizer, cfg map[string]any) (optim.Scheduler, error)

var (
	lossRegistry      = map[string]LossFactory{}
	optimizerRegistry = map[string]OptimizerFactory{}
	schedulerRegistry = map[string]SchedulerFactory{}
)

// RegisterLoss makes a loss constructible by name in Compile.
func RegisterLoss(name string, f LossFactory) { lossRegistry[name] = f }

// RegisterOptimizer makes an optimizer constructible by name in Compile.
func RegisterOptimizer(name string, f OptimizerFactory) { optimizerRegistry[name] = f }

// RegisterScheduler makes a scheduler constructible by name in Compile.
func RegisterScheduler(name string, f SchedulerFactory) { schedulerRegistry[name] = f }

// AvailableLosses lists the registered loss names, sorted.
func AvailableLosses() []string { return sortedNames(lossRegistry) }

// AvailableOptimizers lists the registered optimizer names, sorted.
func AvailableOptimizers() []string { return sortedNames(optimizerRegistry) }

// AvailableSchedulers lists the registered scheduler names, sorted.
func AvailableSchedulers() []string { return sortedNames(schedulerRegistry) }

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildLoss(name string, cfg map[string]any) (Loss, error) {
	f, ok := lossRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLoss, name, AvailableLosses())
	}
	return f(cfg)
}

func buildOptimizer(name string, params []*optim.Parameter, lr float64, cfg map[string]any) (optim.Optimizer, error) {
	f, ok := optimizerRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownOptimizer, name, AvailableOptimizers())
	}
	return f(params, lr, cfg)
}

func buildScheduler(name string, opt optim.Optimizer, cfg map[string]any) (optim.Scheduler, error) {
	f, ok := schedulerRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScheduler, name, AvailableSchedulers())
	}
	return f(opt, cfg)
}

func init() {
	RegisterLoss("mse", func(map[string]any) (Loss, error) {
		return LossFunc(MSE), nil
	})

	RegisterOptimizer("sgd", func(params []*optim.Parameter, lr float64, cfg map[string]any) (optim.Optimizer, error) {
		momentum, _ := cfg["momentum"].(float64)
		return optim.NewSGD(params, optim.SGDConfig{LR: lr, Momentum: momentum}), nil
	})
	RegisterOptimizer("adam", func(params []*optim.Parameter, lr float64, cfg map[string]any) (optim.Optimizer, error) {
		eps, _ := cfg["eps"].(float64)
		return optim.NewAdam(params, optim.AdamConfig{LR: lr, Eps: eps}), nil
	})

	RegisterScheduler("steplr", func(opt optim.Optimizer, cfg map[string]any) (optim.Scheduler, error) {
		stepSize, _ := cfg["step_size"].(int)
		gamma, _ := cfg["gamma"].(float64)
		return optim.NewStepLR(opt, optim.StepLRConfig{StepSize: stepSize, Gamma: gamma}), nil
	})
}

// MSE is the builtin mean squared error over float64 predictions, usable as
// a Loss via LossFunc. Predictions and targets may be []float64, [][]float64
// or a bare float64. When lengths differ, only the shared prefix is averaged.
func MSE(preds, target any) any {
	p := flatten(preds)
	tg := flatten(target)

	n := len(p)
	if len(tg) < n {
		n = len(tg)
	}
	if n == 0 {
		return 0.0
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := p[i] - tg[i]
		sum += d * d
	}
	return sum / float64(n)
}

func flatten(v any) []float64 {
	switch x := v.(type) {
	case []float64:
		return x
	case [][]float64:
		var out []float64
		for _, row := range x {
			out = append(out, row...)
		}
		return out
	case float64:
		return []float64{x}
	}
	return nil
}
