package callbacks

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCallback is returned when a callback identifier is not registered.
var ErrUnknownCallback = errors.New("unknown callback")

// Factory constructs a callback bound to a trainer.
type Factory func(trainer Trainer) Callback

var registry = map[string]Factory{}

// Register makes a callback constructible by name, so Fit can accept string
// identifiers next to callback values.
func Register(name string, f Factory) {
	registry[name] = f
}

// Build constructs the callback registered under name for the given trainer.
func Build(name string, trainer Trainer) (Callback, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownCallback, name, Available())
	}
	return f(trainer), nil
}

// Available lists the registered callback names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("early_stopping", func(t Trainer) Callback {
		return NewEarlyStopping(t, EarlyStoppingConfig{})
	})
	Register("csv_logger", func(t Trainer) Callback {
		return NewCSVLogger(t, "gradsflow_history.csv")
	})
}
