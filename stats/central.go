package stats

import "sort"

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Min returns the smallest value.
func Min(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	lo, _ := minMax(values)
	return lo, nil
}

// Max returns the largest value.
func Max(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	_, hi := minMax(values)
	return hi, nil
}

// Median returns the middle value of the sorted sample, or the average
// of the two middle values when the sample size is even.
//
// Median does not modify values.
func Median(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	return median(sortedCopy(values)), nil
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Mode returns the most frequent value. When several values share the
// highest count, the one occurring first in values wins.
func Mode(values []float64) (float64, error) {
	if err := requireValues("values", values); err != nil {
		return 0, err
	}
	counts, order := tally(values)
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, nil
}

// Modes returns every value sharing the highest count, in ascending order.
func Modes(values []float64) ([]float64, error) {
	if err := requireValues("values", values); err != nil {
		return nil, err
	}
	counts, order := tally(values)
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	var modes []float64
	for _, v := range order {
		if counts[v] == top {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes, nil
}

// tally counts occurrences per distinct value; order lists the distinct
// values by first occurrence.
func tally(values []float64) (map[float64]int, []float64) {
	counts := make(map[float64]int, len(values))
	var order []float64
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	return counts, order
}

// QuartileStart returns the smallest value of quartile q (1 to 4).
//
// The sorted sample is split at its median into values <= median and
// values > median, and each half is split again at its own median.
func QuartileStart(values []float64, q int) (float64, error) {
	part, err := quartile(values, q)
	if err != nil {
		return 0, err
	}
	return part[0], nil
}

// QuartileEnd returns the largest value of quartile q (1 to 4), using the
// same partitioning as QuartileStart.
func QuartileEnd(values []float64, q int) (float64, error) {
	part, err := quartile(values, q)
	if err != nil {
		return 0, err
	}
	return part[len(part)-1], nil
}

func quartile(values []float64, q int) ([]float64, error) {
	if err := requireValues("values", values); err != nil {
		return nil, err
	}
	if q < 1 || q > 4 {
		return nil, invalidArgument("quartile must be between 1 and 4, got %d", q)
	}
	parts := quartiles(sortedCopy(values))
	if len(parts[q-1]) == 0 {
		return nil, invalidArgument("quartile %d is empty for %d values", q, len(values))
	}
	return parts[q-1], nil
}

// quartiles partitions an ascending slice into four ascending slices.
func quartiles(sorted []float64) [4][]float64 {
	lower, upper := splitAtMedian(sorted)
	q1, q2 := splitAtMedian(lower)
	q3, q4 := splitAtMedian(upper)
	return [4][]float64{q1, q2, q3, q4}
}

func splitAtMedian(sorted []float64) (atOrBelow, above []float64) {
	if len(sorted) == 0 {
		return nil, nil
	}
	m := median(sorted)
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] > m })
	return sorted[:i], sorted[i:]
}
