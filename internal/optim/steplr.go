package optim

// StepLR decays an optimizer's learning rate by Gamma every StepSize steps.
//
// Mirrors the classic interval-decay schedule:
//
//	lr = lr * gamma  (every StepSize calls to Step)
//
// Example:
//
//	scheduler := optim.NewStepLR(optimizer, optim.StepLRConfig{
//	    StepSize: 10,
//	    Gamma:    0.5,
//	})
type StepLR struct {
	optimizer Optimizer
	stepSize  int
	gamma     float64
	count     int
}

// StepLRConfig holds configuration for the StepLR scheduler.
type StepLRConfig struct {
	StepSize int     // Interval between decays in scheduler steps (default: 1)
	Gamma    float64 // Multiplicative decay factor (default: 0.1)
}

// NewStepLR creates a StepLR schedule over the given optimizer.
func NewStepLR(optimizer Optimizer, config StepLRConfig) *StepLR {
	if config.StepSize <= 0 {
		config.StepSize = 1
	}
	if config.Gamma == 0 {
		config.Gamma = 0.1
	}

	return &StepLR{
		optimizer: optimizer,
		stepSize:  config.StepSize,
		gamma:     config.Gamma,
	}
}

// Step advances the schedule by one interval unit.
func (s *StepLR) Step() {
	s.count++
	if s.count%s.stepSize == 0 {
		s.optimizer.SetLR(s.optimizer.GetLR() * s.gamma)
	}
}
