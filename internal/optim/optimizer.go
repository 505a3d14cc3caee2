// Package optim defines the optimizer and scheduler collaborators driven by
// the training engine, plus reference implementations.
//
// This package provides:
//   - Optimizer interface: what the engine and its callbacks need from an optimizer
//   - Scheduler interface: learning-rate schedules stepped by the engine
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - StepLR: interval-based learning-rate decay
//
// The engine never computes gradients itself. Learners populate Parameter.Grad
// during their backward pass (usually from the loss value's Backward hook) and
// the optimizer consumes them on Step.
//
// Example usage:
//
//	optimizer := optim.NewSGD(learner.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
//	// Training loop (normally driven by model.Fit)
//	for range epochs {
//	    optimizer.ZeroGrad()
//	    loss := computeLoss(learner, batch) // fills Parameter.Grad
//	    optimizer.Step()
//	}
package optim

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update learner parameters based on the gradients accumulated in
// them to minimize the loss during training.
type Optimizer interface {
	// Step applies one gradient update to all parameters in-place.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float64

	// SetLR replaces the learning rate. Used by schedulers.
	SetLR(lr float64)
}

// Scheduler adjusts an optimizer's learning rate over the course of a run.
// The engine steps every configured scheduler once per epoch.
type Scheduler interface {
	Step()
}

// Parameter is one flat trainable parameter with its gradient buffer.
//
// Data and Grad always have the same length. The learner (or its loss value's
// backward pass) writes Grad; optimizers read Grad and update Data.
type Parameter struct {
	Name string
	Data []float64
	Grad []float64
}

// NewParameter creates a named parameter of the given size, zero-initialized.
func NewParameter(name string, size int) *Parameter {
	return &Parameter{
		Name: name,
		Data: make([]float64, size),
		Grad: make([]float64, size),
	}
}

// zeroGrads clears gradients for a parameter list.
func zeroGrads(params []*Parameter) {
	for _, p := range params {
		for i := range p.Grad {
			p.Grad[i] = 0
		}
	}
}
