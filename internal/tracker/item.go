package tracker

import "fmt"

// Itemer is implemented by framework values (loss tensors and the like) that
// can report themselves as a single scalar.
type Itemer interface {
	Item() float64
}

// Item converts a scalar-like value to float64.
//
// Accepted: any Go numeric scalar, an Itemer, or a single-element float
// slice. Anything else fails with ErrNotScalar.
func Item(v any) (float64, error) {
	switch x := v.(type) {
	case Itemer:
		return x.Item(), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case []float64:
		if len(x) == 1 {
			return x[0], nil
		}
	case []float32:
		if len(x) == 1 {
			return float64(x[0]), nil
		}
	}
	return 0, fmt.Errorf("%w: %T", ErrNotScalar, v)
}
