package stats

import (
	"math"

	moremath "github.com/aclements/go-moremath/stats"
)

// NormalDensity returns the probability density of the normal distribution
// with the given mean and standard deviation at value.
func NormalDensity(value, mean, stdDev float64) (float64, error) {
	if stdDev == 0 {
		return 0, invalidArgument("standardDeviation must not be zero")
	}
	z := value - mean
	return 1 / (stdDev * math.Sqrt(2*math.Pi)) * math.Exp(-z*z/(2*stdDev*stdDev)), nil
}

// NormalCDF returns the probability that a normal variate with the given
// mean and standard deviation is at most value.
func NormalCDF(value, mean, stdDev float64) (float64, error) {
	if !(stdDev > 0) {
		return 0, invalidArgument("standardDeviation must be positive, got %v", stdDev)
	}
	return moremath.NormalDist{Mu: mean, Sigma: stdDev}.CDF(value), nil
}

// InverseNormal returns the z-score whose standard normal cumulative
// probability is p. p must lie strictly between 0 and 1.
func InverseNormal(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, invalidArgument("probability must be in (0, 1), got %v", p)
	}
	return moremath.StdNormal.InvCDF(p), nil
}
