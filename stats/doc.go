// Package stats computes descriptive statistics over a sample of
// float64 observations: histogram classes and their frequencies,
// dispersion, least-squares regression and the normal distribution.
//
// Every function takes a materialized slice, does not modify it and
// returns a fresh result. Precondition failures are reported as errors
// wrapping ErrInvalidArgument; degenerate numeric results that are not
// guarded explicitly propagate as NaN or Inf.
//
// Functions suffixed with Of accept a slice of arbitrary records and a
// Selector extracting the observation from each record.
package stats
