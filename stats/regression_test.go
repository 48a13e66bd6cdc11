package stats

import (
	"errors"
	"math"
	"testing"
)

func TestRegressionLine(t *testing.T) {
	tests := []struct {
		name             string
		xs, ys           []float64
		slope, intercept float64
	}{
		{
			"integer fit",
			[]float64{9, 12, 14, 12, 12, 13, 10, 11, 12, 15},
			[]float64{1216, 1300, 1356, 1288, 1276, 1292, 1260, 1244, 1288, 1360},
			24, 1000,
		},
		{
			"normal scores",
			[]float64{3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			[]float64{-1.977368428, -1.522036242, -0.785773832, -0.274110116, 0.171284586, 0.655726679, 0.962098754, 1.589267557, 2.144410621, 2.408915546},
			0.492181572424858, -3.35412028069202,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := RegressionLine(tt.xs, tt.ys)
			if err != nil {
				t.Fatalf("RegressionLine returned error: %v", err)
			}
			if math.Abs(lf.Slope-tt.slope) > 1e-7 {
				t.Fatalf("expected slope %v, got %v", tt.slope, lf.Slope)
			}
			if math.Abs(lf.Intercept-tt.intercept) > 1e-7 {
				t.Fatalf("expected intercept %v, got %v", tt.intercept, lf.Intercept)
			}
			if l2, _ := LinReg(tt.xs, tt.ys); l2 != lf {
				t.Fatalf("LinReg returned %v, want %v", l2, lf)
			}
		})
	}
}

func TestRegressionLineInvalid(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{"empty x", nil, []float64{1}},
		{"empty y", []float64{1}, nil},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
		{"constant x", []float64{4, 4, 4}, []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RegressionLine(tt.xs, tt.ys); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestLineFormula(t *testing.T) {
	lf := LineFormula{Slope: 24, Intercept: 1000}
	if got := lf.At(10); got != 1240 {
		t.Fatalf("expected 1240, got %v", got)
	}
	if got := lf.String(); got != "f(x) = 24x + 1000" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestNormalProbabilityLine(t *testing.T) {
	values := sample(t)
	lf, err := NormalProbabilityLine(values)
	if err != nil {
		t.Fatalf("NormalProbabilityLine returned error: %v", err)
	}
	if math.Abs(lf.Slope-100.77809) > 1e-3 {
		t.Fatalf("expected slope 100.778, got %v", lf.Slope)
	}
	if math.Abs(lf.Intercept-1880.352) > 1e-6 {
		t.Fatalf("expected intercept at the mean 1880.352, got %v", lf.Intercept)
	}
	if _, err := NormalProbabilityLine([]float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for one value, got %v", err)
	}
}
