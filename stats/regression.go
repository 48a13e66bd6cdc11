package stats

import (
	"fmt"
	"sort"
)

// LineFormula is the line y = Slope*x + Intercept.
type LineFormula struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (lf LineFormula) At(x float64) float64 {
	return lf.Slope*x + lf.Intercept
}

func (lf LineFormula) String() string {
	return fmt.Sprintf("f(x) = %gx + %g", lf.Slope, lf.Intercept)
}

// RegressionLine fits an ordinary least-squares line through the points
// (xs[i], ys[i]). It fails when all xs are equal since the slope is then
// undefined.
func RegressionLine(xs, ys []float64) (LineFormula, error) {
	if err := requireValues("valuesX", xs); err != nil {
		return LineFormula{}, err
	}
	if err := requireValues("valuesY", ys); err != nil {
		return LineFormula{}, err
	}
	if len(xs) != len(ys) {
		return LineFormula{}, invalidArgument("valuesX and valuesY must have the same length, got %d and %d", len(xs), len(ys))
	}
	if isConstant(xs) {
		return LineFormula{}, invalidArgument("valuesX must not be constant")
	}

	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i, x := range xs {
		y := ys[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	avgX, avgY := sumX/n, sumY/n
	avgXY, avgXX := sumXY/n, sumXX/n

	slope := (avgX*avgY - avgXY) / (avgX*avgX - avgXX)
	return LineFormula{
		Slope:     slope,
		Intercept: avgY - slope*avgX,
	}, nil
}

// NormalProbabilityLine regresses the sorted sample against the standard
// normal scores of the plotting positions (i+0.5)/n. For normally
// distributed data the slope approximates the standard deviation and the
// intercept the mean.
func NormalProbabilityLine(values []float64) (LineFormula, error) {
	if err := requireValues("values", values); err != nil {
		return LineFormula{}, err
	}
	if len(values) < 2 {
		return LineFormula{}, invalidArgument("normal probability line needs at least 2 values, got %d", len(values))
	}

	sorted := sortedCopy(values)
	n := float64(len(sorted))
	scores := make([]float64, len(sorted))
	for i := range sorted {
		z, err := InverseNormal((float64(i) + 0.5) / n)
		if err != nil {
			return LineFormula{}, err
		}
		scores[i] = z
	}
	return RegressionLine(scores, sorted)
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func sortedCopy(values []float64) []float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	return s
}

// trendLine fits the values against their zero-based observation index.
func trendLine(values []float64) (LineFormula, error) {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	if len(xs) < 2 {
		return LineFormula{Intercept: values[0]}, nil
	}
	return RegressionLine(xs, values)
}
