package stats

// Selector extracts the observation of interest from a record.
type Selector[T any] func(T) float64

// Values applies s to every record, preserving order.
func (s Selector[T]) Values(records []T) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = s(r)
	}
	return values
}

func project[T any](records []T, s Selector[T]) ([]float64, error) {
	if len(records) == 0 {
		return nil, invalidArgument("values must not be empty")
	}
	if s == nil {
		return nil, invalidArgument("selector must not be nil")
	}
	return s.Values(records), nil
}

func apply[T, R any](records []T, s Selector[T], f func([]float64) (R, error)) (R, error) {
	values, err := project(records, s)
	if err != nil {
		var zero R
		return zero, err
	}
	return f(values)
}

// RangeOf is Range over the selected values of records.
func RangeOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Range)
}

// ClassWidthOf is ClassWidth over the selected values of records.
func ClassWidthOf[T any](records []T, valueRange float64, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return ClassWidth(v, valueRange) })
}

// ClassesOf is Classes over the selected values of records.
func ClassesOf[T any](records []T, classWidth float64, numberOfClasses int, s Selector[T]) ([]float64, error) {
	return apply(records, s, func(v []float64) ([]float64, error) { return Classes(v, classWidth, numberOfClasses) })
}

// FrequenciesOf counts the selected values of records per class.
func FrequenciesOf[T any](classes []float64, records []T, s Selector[T]) ([]ClassFrequency, error) {
	return apply(records, s, func(v []float64) ([]ClassFrequency, error) { return Frequencies(classes, v) })
}

// CumulativeFrequenciesOf is CumulativeFrequencies over the selected values of records.
func CumulativeFrequenciesOf[T any](classes []float64, records []T, s Selector[T]) ([]ClassFrequency, error) {
	return apply(records, s, func(v []float64) ([]ClassFrequency, error) { return CumulativeFrequencies(classes, v) })
}

// VariancePopulationOf is VariancePopulation over the selected values of records.
func VariancePopulationOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return VariancePopulation(v, mean) })
}

// VarianceSampleOf is VarianceSample over the selected values of records.
func VarianceSampleOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return VarianceSample(v, mean) })
}

// StdDevPopulationOf is StdDevPopulation over the selected values of records.
func StdDevPopulationOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return StdDevPopulation(v, mean) })
}

// StdDevSampleOf is StdDevSample over the selected values of records.
func StdDevSampleOf[T any](records []T, mean float64, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return StdDevSample(v, mean) })
}

// MeanOf is Mean over the selected values of records.
func MeanOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Mean)
}

// MedianOf is Median over the selected values of records.
func MedianOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Median)
}

// ModeOf is Mode over the selected values of records.
func ModeOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Mode)
}

// MinOf is Min over the selected values of records.
func MinOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Min)
}

// MaxOf is Max over the selected values of records.
func MaxOf[T any](records []T, s Selector[T]) (float64, error) {
	return apply(records, s, Max)
}

// QuartileStartOf is QuartileStart over the selected values of records.
func QuartileStartOf[T any](records []T, q int, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return QuartileStart(v, q) })
}

// QuartileEndOf is QuartileEnd over the selected values of records.
func QuartileEndOf[T any](records []T, q int, s Selector[T]) (float64, error) {
	return apply(records, s, func(v []float64) (float64, error) { return QuartileEnd(v, q) })
}

// RegressionLineOf fits a line through the points (sx(r), sy(r)) of records.
func RegressionLineOf[T any](records []T, sx, sy Selector[T]) (LineFormula, error) {
	xs, err := project(records, sx)
	if err != nil {
		return LineFormula{}, err
	}
	ys, err := project(records, sy)
	if err != nil {
		return LineFormula{}, err
	}
	return RegressionLine(xs, ys)
}

// RegressionLineOf2 fits a line through x values taken from xRecords and
// y values taken from yRecords, paired by position.
func RegressionLineOf2[T, U any](xRecords []T, yRecords []U, sx Selector[T], sy Selector[U]) (LineFormula, error) {
	xs, err := project(xRecords, sx)
	if err != nil {
		return LineFormula{}, err
	}
	ys, err := project(yRecords, sy)
	if err != nil {
		return LineFormula{}, err
	}
	return RegressionLine(xs, ys)
}
