package bench

import (
	"encoding/json"
	"fmt"
	"math"
)

// Summary is the merged statistics for one test across all outer runs.
// Metrics holds every metric name seen for the test, each merged into a
// flat series: sequence values are concatenated, scalar values are
// collected one per run. Duration, Deviation and Passed are computed from
// the merged "times" and "passed" series; in the JSON form they shadow
// merged metrics of the same name.
type Summary struct {
	Metrics   map[string][]float64
	Duration  float64
	Deviation float64
	Passed    float64
}

// Aggregated maps test name to its merged summary.
type Aggregated map[string]*Summary

// Aggregate merges one RunResult per outer run into per-test statistics.
//
// The test-name set is taken from the first run. A test absent from a
// later run simply contributes no values for that run; in particular the
// pass rate still divides by outerRuns, not by the number of runs that
// reported a "passed" value, so uneven test sets skew the denominator.
// That matches the long-standing behavior of the suite runners this tool
// replaces and is kept as is.
//
// An empty merged "times" series yields NaN duration and deviation,
// meaning "no timing data"; callers must not treat NaN as an error.
func Aggregate(runs []RunResult, outerRuns int) Aggregated {
	agg := make(Aggregated)
	if len(runs) == 0 {
		return agg
	}
	for name := range runs[0] {
		acc := make(map[string][]float64)
		for _, run := range runs {
			metrics, ok := run[name]
			if !ok {
				continue
			}
			for metric, v := range metrics {
				switch v.Kind {
				case KindSequence:
					acc[metric] = append(acc[metric], v.Seq...)
				default:
					acc[metric] = append(acc[metric], v.Scalar)
				}
			}
		}

		times := acc["times"]
		var passedSum float64
		for _, p := range acc["passed"] {
			passedSum += p
		}

		agg[name] = &Summary{
			Metrics:   acc,
			Duration:  Mean(times),
			Deviation: StdDev(times),
			Passed:    passedSum / float64(outerRuns),
		}
	}
	return agg
}

// Mean returns the arithmetic mean, NaN for an empty series.
func Mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (denominator N).
// A single-element series gives 0.0, an empty series gives NaN.
func StdDev(values []float64) float64 {
	m := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func (s *Summary) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Metrics)+3)
	for name, series := range s.Metrics {
		data, err := json.Marshal(series)
		if err != nil {
			return nil, err
		}
		out[name] = data
	}
	out["duration"] = marshalFloat(s.Duration)
	out["deviation"] = marshalFloat(s.Deviation)
	out["passed"] = marshalFloat(s.Passed)
	return json.Marshal(out)
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Metrics = make(map[string][]float64)
	for name, msg := range raw {
		switch name {
		case "duration", "deviation", "passed":
			v, err := unmarshalFloat(msg)
			if err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
			switch name {
			case "duration":
				s.Duration = v
			case "deviation":
				s.Deviation = v
			case "passed":
				s.Passed = v
			}
		default:
			var series []float64
			if err := json.Unmarshal(msg, &series); err != nil {
				return fmt.Errorf("metric %s: %w", name, err)
			}
			s.Metrics[name] = series
		}
	}
	return nil
}

// NaN is not representable in JSON; it rides as null.
func marshalFloat(v float64) json.RawMessage {
	if math.IsNaN(v) {
		return json.RawMessage("null")
	}
	data, _ := json.Marshal(v)
	return data
}

func unmarshalFloat(data json.RawMessage) (float64, error) {
	if string(data) == "null" {
		return math.NaN(), nil
	}
	var v float64
	err := json.Unmarshal(data, &v)
	return v, err
}
