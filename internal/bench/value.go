// Package bench holds the benchmark result data model and the cross-run
// aggregation algorithm.
package bench

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the two shapes a metric value can take.
type Kind int

const (
	// KindScalar is a single number; booleans are coerced to 0 or 1.
	KindScalar Kind = iota
	// KindSequence is an ordered series of numbers, one per inner run.
	KindSequence
)

// Value is a tagged union of a scalar metric and a sequence metric. The
// executor reports metrics as JSON; a bool or number decodes to a scalar,
// an array decodes to a sequence.
type Value struct {
	Kind   Kind
	Scalar float64
	Seq    []float64
}

// Metrics maps metric name to its value for one test in one outer run.
// The aggregator gives special meaning to "times" (sequence of durations
// in seconds) and "passed" (scalar, 0 or 1); everything else is opaque.
type Metrics map[string]Value

// RunResult maps test name to its metrics for one outer run.
type RunResult map[string]Metrics

// ScalarValue constructs a scalar Value.
func ScalarValue(v float64) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// SequenceValue constructs a sequence Value.
func SequenceValue(vs ...float64) Value {
	return Value{Kind: KindSequence, Seq: vs}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case bool:
		*v = ScalarValue(boolToFloat(x))
	case float64:
		*v = ScalarValue(x)
	case []any:
		seq := make([]float64, 0, len(x))
		for i, elem := range x {
			switch e := elem.(type) {
			case bool:
				seq = append(seq, boolToFloat(e))
			case float64:
				seq = append(seq, e)
			default:
				return fmt.Errorf("sequence element %d: unsupported type %T", i, elem)
			}
		}
		*v = Value{Kind: KindSequence, Seq: seq}
	default:
		return fmt.Errorf("unsupported metric value type %T", raw)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindSequence {
		if v.Seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Seq)
	}
	return json.Marshal(v.Scalar)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
