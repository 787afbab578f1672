package catalog

import "fmt"

// MeanArterialPressure estimates MAP from systolic and diastolic pressure.
func MeanArterialPressure(systolic, diastolic float64) float64 {
	return (2*diastolic + systolic) / 3
}

// HemodynamicallyStable reports whether the vitals show neither hypotension
// nor tachycardia and a shock index below 0.7.
func HemodynamicallyStable(systolic, diastolic, heartRate float64) bool {
	hypotension := systolic < 90 || MeanArterialPressure(systolic, diastolic) < 65
	tachycardia := heartRate > 100
	shockIndex := heartRate / systolic

	return !hypotension && !tachycardia && shockIndex < 0.7
}

// numericInput reads a required numeric input, accepting the numeric kinds
// JSON decoding and Go callers produce.
func numericInput(inputs map[string]any, name string) (float64, error) {
	v, ok := inputs[name]
	if !ok {
		return 0, fmt.Errorf("missing input %q", name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("input %q must be numeric, got %T", name, v)
}
