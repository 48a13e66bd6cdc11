package main

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"statsworker/stats"
)

var errNoClasses = errors.New("summary has no classes to chart")

func chartPath(dir string, runID int64) string {
	return filepath.Join(dir, fmt.Sprintf("run-%d.png", runID))
}

// renderHistogram draws the class frequencies as bars and the counts a
// normal sample would produce as a line, and saves the chart to path.
// The image format follows the file extension.
func renderHistogram(path string, title string, s stats.Summary) error {
	if len(s.Classes) == 0 {
		return errNoClasses
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = "class start"
	p.Y.Label.Text = "frequency"

	counts := make(plotter.Values, len(s.Classes))
	expected := make(plotter.XYs, len(s.Classes))
	labels := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		counts[i] = float64(c.Frequency)
		expected[i].X = float64(i)
		expected[i].Y = c.Expected
		labels[i] = strconv.FormatFloat(c.Boundary, 'f', 1, 64)
	}

	bars, err := plotter.NewBarChart(counts, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	normal, err := plotter.NewLine(expected)
	if err != nil {
		return err
	}
	normal.LineStyle.Width = vg.Points(1.5)
	normal.LineStyle.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}

	p.Add(bars, normal)
	p.Legend.Add("frequency", bars)
	p.Legend.Add("normal", normal)
	p.Legend.Top = true
	p.NominalX(labels...)

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
