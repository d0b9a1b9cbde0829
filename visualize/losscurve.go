// Package visualize renders training diagnostics to image files.
package visualize

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// SaveLossCurve plots a per-iteration loss trace and writes it to path.
// The output format follows the file extension (.png, .svg, .pdf).
func SaveLossCurve(trace []float64, title, path string) error {
	if len(trace) == 0 {
		return errors.NewValueError("SaveLossCurve", "empty loss trace")
	}
	if err := errors.CheckNumericalStability("SaveLossCurve", trace, 0); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Loss"

	pts := make(plotter.XYs, len(trace))
	for i, v := range trace {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "SaveLossCurve: building line plot")
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveLossCurve: writing plot")
	}
	return nil
}

// CompareLossCurves plots several loss traces on shared axes, one line per
// named trace, and writes the result to path.
func CompareLossCurves(traces map[string][]float64, title, path string) error {
	if len(traces) == 0 {
		return errors.NewValueError("CompareLossCurves", "no traces given")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Loss"
	p.Legend.Top = true

	// Sort names so the legend and line styles are stable across runs.
	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]interface{}, 0, 2*len(traces))
	for _, name := range names {
		trace := traces[name]
		if len(trace) == 0 {
			return errors.NewValueError("CompareLossCurves", "empty loss trace: "+name)
		}
		if err := errors.CheckNumericalStability("CompareLossCurves", trace, 0); err != nil {
			return err
		}

		pts := make(plotter.XYs, len(trace))
		for j, v := range trace {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		args = append(args, name, pts)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return errors.Wrap(err, "CompareLossCurves: building line plots")
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "CompareLossCurves: writing plot")
	}
	return nil
}
