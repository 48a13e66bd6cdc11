package stats

// Spreadsheet-style names for the functions above.

// VarP is VariancePopulation.
func VarP(values []float64, mean float64) (float64, error) { return VariancePopulation(values, mean) }

// VarS is VarianceSample.
func VarS(values []float64, mean float64) (float64, error) { return VarianceSample(values, mean) }

// StdDevP is StdDevPopulation.
func StdDevP(values []float64, mean float64) (float64, error) { return StdDevPopulation(values, mean) }

// StdDevS is StdDevSample.
func StdDevS(values []float64, mean float64) (float64, error) { return StdDevSample(values, mean) }

// LinReg is RegressionLine.
func LinReg(xs, ys []float64) (LineFormula, error) { return RegressionLine(xs, ys) }

// NormSInv is InverseNormal.
func NormSInv(p float64) (float64, error) { return InverseNormal(p) }

// NormDist is NormalDensity.
func NormDist(value, mean, stdDev float64) (float64, error) {
	return NormalDensity(value, mean, stdDev)
}

// VarPOf is VariancePopulationOf.
func VarPOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return VariancePopulationOf(records, mean, s)
}

// VarSOf is VarianceSampleOf.
func VarSOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return VarianceSampleOf(records, mean, s)
}

// StdDevPOf is StdDevPopulationOf.
func StdDevPOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return StdDevPopulationOf(records, mean, s)
}

// StdDevSOf is StdDevSampleOf.
func StdDevSOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return StdDevSampleOf(records, mean, s)
}

// LinRegOf is RegressionLineOf.
func LinRegOf[T any](records []T, sx, sy Selector[T]) (LineFormula, error) {
	return RegressionLineOf(records, sx, sy)
}

// LinRegOf2 is RegressionLineOf2.
func LinRegOf2[T, U any](xRecords []T, yRecords []U, sx Selector[T], sy Selector[U]) (LineFormula, error) {
	return RegressionLineOf2(xRecords, yRecords, sx, sy)
}
