package stats

import "testing"

// weights holds 125 measurements spanning 1668 to 2216.
var weights = []float64{
	1890, 1844, 1850, 1820, 1896, 1936, 1760, 1928, 1822, 1985,
	2069, 1944, 1790, 1936, 1882, 1920, 1831, 1852, 1782, 1915,
	1787, 1955, 1782, 1790, 1874, 1836, 1822, 2091, 2129, 1809,
	1793, 1869, 2015, 1963, 1793, 1953, 1736, 1980, 1801, 1944,
	2216, 1831, 1893, 1763, 1844, 2004, 1925, 1844, 1855, 1999,
	1888, 2088, 1944, 2001, 1809, 1844, 2069, 1915, 1907, 2037,
	1901, 1936, 1779, 1925, 1855, 2007, 2007, 1925, 1706, 1820,
	1860, 1833, 1855, 1869, 2037, 1771, 1828, 1812, 1917, 1755,
	1689, 1888, 1912, 1882, 1765, 1944, 1679, 2037, 1757, 2056,
	1996, 1760, 1782, 1888, 1817, 2015, 1757, 1955, 1828, 1831,
	1774, 2023, 1828, 1738, 1939, 1928, 1828, 1901, 1738, 1896,
	1736, 2020, 1847, 1939, 1888, 1668, 1915, 1765, 1944, 1795,
	1825, 1996, 1755, 1784, 1888,
}

func sample(t *testing.T) []float64 {
	t.Helper()
	if len(weights) != 125 {
		t.Fatalf("expected 125 fixture values, got %d", len(weights))
	}
	return append([]float64(nil), weights...)
}
