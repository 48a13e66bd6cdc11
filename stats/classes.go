package stats

import "math"

// MaxClasses bounds the numberOfClasses accepted by Classes and Summarize.
const MaxClasses = 10000

// ClassFrequency pairs a class boundary with the number of observations
// counted for it.
type ClassFrequency struct {
	Boundary float64
	Count    int
}

// Range returns max(values) - min(values).
func Range(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	lo, hi := minMax(values)
	return hi - lo, nil
}

// ClassWidth divides valueRange by the square root of the sample size,
// rounded half away from zero.
func ClassWidth(values []float64, valueRange float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	k := math.Round(math.Sqrt(float64(len(values))))
	return valueRange / k, nil
}

// DefaultClassCount returns the number of classes for which Classes,
// fed with ClassWidth, covers the whole sample with interior classes,
// capped at MaxClasses.
func DefaultClassCount(n int) int {
	if n < 1 {
		n = 1
	}
	k := int(math.Round(math.Sqrt(float64(n)))) + 3
	if k > MaxClasses {
		k = MaxClasses
	}
	return k
}

// Classes returns numberOfClasses boundaries spaced classWidth apart.
// The first boundary sits one and a half classes below the minimum.
func Classes(values []float64, classWidth float64, numberOfClasses int) ([]float64, error) {
	if err := requireValues("values", values); err != nil {
		return nil, err
	}
	if numberOfClasses <= 1 {
		return nil, invalidArgument("numberOfClasses must be greater than 1, got %d", numberOfClasses)
	}
	if numberOfClasses > MaxClasses {
		return nil, invalidArgument("numberOfClasses must be at most %d, got %d", MaxClasses, numberOfClasses)
	}
	if !(classWidth > 0) || math.IsInf(classWidth, 0) {
		return nil, invalidArgument("classWidth must be a positive finite number, got %v", classWidth)
	}

	lo, _ := minMax(values)
	classes := make([]float64, numberOfClasses)
	classes[0] = lo - classWidth/2 - classWidth
	for i := 1; i < numberOfClasses; i++ {
		classes[i] = classes[i-1] + classWidth
	}
	return classes, nil
}

// Frequencies counts the observations per class.
//
// The first class counts values below classes[0], the last class counts
// values at or above classes[last] and every other class i counts values
// in [classes[i-1], classes[i]).
func Frequencies(classes, values []float64) ([]ClassFrequency, error) {
	if err := requireValues("values", values); err != nil {
		return nil, err
	}
	if err := requireValues("classes", classes); err != nil {
		return nil, err
	}

	last := len(classes) - 1
	freqs := make([]ClassFrequency, len(classes))
	for i, boundary := range classes {
		freqs[i].Boundary = boundary
		for _, v := range values {
			switch {
			case i == 0:
				if v < boundary {
					freqs[i].Count++
				}
			case i == last:
				if v >= boundary {
					freqs[i].Count++
				}
			default:
				if v >= classes[i-1] && v < boundary {
					freqs[i].Count++
				}
			}
		}
	}
	return freqs, nil
}

// CumulativeFrequencies returns the running total of Frequencies.
func CumulativeFrequencies(classes, values []float64) ([]ClassFrequency, error) {
	freqs, err := Frequencies(classes, values)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(freqs); i++ {
		freqs[i].Count += freqs[i-1].Count
	}
	return freqs, nil
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
