package stats

import "math"

// The dispersion functions take the central value from the caller
// instead of recomputing it, so any mean may be supplied.

// VariancePopulation returns the mean squared deviation from mean.
func VariancePopulation(values []float64, mean float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	return sumSquaredDev(values, mean) / float64(len(values)), nil
}

// VarianceSample returns the squared deviation from mean divided by n-1.
// It needs at least two values.
func VarianceSample(values []float64, mean float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	if len(values) < 2 {
		return 0, invalidArgument("sample variance needs at least 2 values, got %d", len(values))
	}
	return sumSquaredDev(values, mean) / float64(len(values)-1), nil
}

// StdDevPopulation is the square root of VariancePopulation.
func StdDevPopulation(values []float64, mean float64) (float64, error) {
	v, err := VariancePopulation(values, mean)
	if err != nil {
		return 0, err
	}
	return sqrtVariance(v)
}

// StdDevSample is the square root of VarianceSample.
func StdDevSample(values []float64, mean float64) (float64, error) {
	v, err := VarianceSample(values, mean)
	if err != nil {
		return 0, err
	}
	return sqrtVariance(v)
}

func sqrtVariance(v float64) (float64, error) {
	if math.IsNaN(v) || v < 0 {
		return 0, invalidArgument("variance must be a non-negative number, got %v", v)
	}
	return math.Sqrt(v), nil
}

func sumSquaredDev(values []float64, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum
}
