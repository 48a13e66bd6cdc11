package stats

import "math"

// Class is one row of a Summary's class table.
type Class struct {
	Boundary   float64
	Frequency  int
	Cumulative int
	// Density is the normal density at Boundary for the sample's mean and
	// population standard deviation.
	Density float64
	// Expected is the count a normal sample of the same size would put in
	// a class of ClassWidth around Boundary.
	Expected float64
}

// Summary is the full descriptive report of one sample.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Range  float64
	Mean   float64
	Median float64
	Mode   float64
	Q1     float64 // end of the first quartile
	Q3     float64 // end of the third quartile

	VariancePopulation float64
	VarianceSample     float64
	StdDevPopulation   float64
	StdDevSample       float64

	ClassWidth float64
	Classes    []Class

	// Trend is the regression of the values against their index.
	Trend LineFormula
}

// Summarize computes every statistic of the package for values.
// A numberOfClasses <= 0 selects DefaultClassCount. NaN and infinite
// values are rejected.
//
// Statistics that are undefined for tiny or constant samples (sample
// variance, quartiles, density) are left at zero rather than failing the
// whole report.
func Summarize(values []float64, numberOfClasses int) (Summary, error) {
	if err := requireValues("values", values); err != nil {
		return Summary{}, err
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Summary{}, invalidArgument("values must be finite, got %v at index %d", v, i)
		}
	}
	if numberOfClasses <= 0 {
		numberOfClasses = DefaultClassCount(len(values))
	}

	s := Summary{Count: len(values)}
	s.Min, s.Max = minMax(values)
	s.Range = s.Max - s.Min
	s.Mean, _ = Mean(values)
	s.Median, _ = Median(values)
	s.Mode, _ = Mode(values)
	if q1, err := QuartileEnd(values, 1); err == nil {
		s.Q1 = q1
	}
	if q3, err := QuartileEnd(values, 3); err == nil {
		s.Q3 = q3
	}

	s.VariancePopulation, _ = VariancePopulation(values, s.Mean)
	s.StdDevPopulation, _ = StdDevPopulation(values, s.Mean)
	if len(values) > 1 {
		s.VarianceSample, _ = VarianceSample(values, s.Mean)
		s.StdDevSample, _ = StdDevSample(values, s.Mean)
	}

	trend, err := trendLine(values)
	if err != nil {
		return Summary{}, err
	}
	s.Trend = trend

	s.ClassWidth, _ = ClassWidth(values, s.Range)
	if s.ClassWidth == 0 {
		// constant sample: no histogram
		return s, nil
	}
	classes, err := Classes(values, s.ClassWidth, numberOfClasses)
	if err != nil {
		return Summary{}, err
	}
	cumulative, err := CumulativeFrequencies(classes, values)
	if err != nil {
		return Summary{}, err
	}
	s.Classes = make([]Class, len(classes))
	for i, c := range cumulative {
		row := Class{Boundary: c.Boundary, Cumulative: c.Count, Frequency: c.Count}
		if i > 0 {
			row.Frequency -= cumulative[i-1].Count
		}
		if d, err := NormalDensity(c.Boundary, s.Mean, s.StdDevPopulation); err == nil {
			row.Density = d
			row.Expected = d * s.ClassWidth * float64(s.Count)
		}
		s.Classes[i] = row
	}
	return s, nil
}
