package metrics

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// warmupLen is the prefix skipped when choosing the y-axis limit, so an
// early loss spike does not flatten the rest of the curve.
const warmupLen = 1000

// LossPlot renders per-minibatch training losses with a running
// average overlay.
type LossPlot struct {
	// Losses holds one loss value per minibatch, in training order.
	Losses []float64

	// Epochs, when positive, adds epoch ticks to the x-axis derived
	// from iterations per epoch.
	Epochs int

	// Window is the running-average window. Defaults to 100.
	Window int

	// Label is appended to the legend entries.
	Label string
}

// Save renders the plot and writes it to path. The image format is
// chosen from the file extension (.png, .svg, .pdf).
func (lp LossPlot) Save(path string) error {
	p, err := lp.build()
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("metrics: saving loss plot: %w", err)
	}
	return nil
}

func (lp LossPlot) build() (*plot.Plot, error) {
	if len(lp.Losses) == 0 {
		return nil, fmt.Errorf("metrics: no losses to plot")
	}
	window := lp.Window
	if window <= 0 {
		window = 100
	}

	p := plot.New()
	p.X.Label.Text = "Iterations"
	p.Y.Label.Text = "Loss"

	lossLine, err := plotter.NewLine(seriesXY(lp.Losses, 0))
	if err != nil {
		return nil, fmt.Errorf("metrics: loss series: %w", err)
	}
	p.Add(lossLine)
	p.Legend.Add(legendLabel("Minibatch Loss", lp.Label), lossLine)

	if avg := RunningAverage(lp.Losses, window); avg != nil {
		// Center the averaged series over the windows it covers.
		avgLine, err := plotter.NewLine(seriesXY(avg, float64(window-1)/2))
		if err != nil {
			return nil, fmt.Errorf("metrics: running-average series: %w", err)
		}
		avgLine.LineStyle.Width = vg.Points(1.5)
		p.Add(avgLine)
		p.Legend.Add(legendLabel("Running Average", lp.Label), avgLine)
	}

	// Scale the y-axis from the post-warmup maximum so an initial
	// spike does not dominate.
	tail := lp.Losses
	if len(tail) > warmupLen {
		tail = tail[warmupLen:]
	}
	maxLoss := tail[0]
	for _, v := range tail {
		if v > maxLoss {
			maxLoss = v
		}
	}
	if maxLoss > 0 {
		p.Y.Min = 0
		p.Y.Max = maxLoss * 1.5
	}

	if lp.Epochs > 0 {
		iterPerEpoch := len(lp.Losses) / lp.Epochs
		if iterPerEpoch > 0 {
			p.X.Tick.Marker = epochTicks{iters: len(lp.Losses), perEpoch: iterPerEpoch}
			p.X.Label.Text = "Iterations / Epochs"
		}
	}

	return p, nil
}

func seriesXY(values []float64, xOffset float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i) + xOffset
		xys[i].Y = v
	}
	return xys
}

func legendLabel(base, custom string) string {
	if custom == "" {
		return base
	}
	return base + " " + custom
}

// epochTicks places a labeled tick at every tenth epoch boundary.
type epochTicks struct {
	iters    int
	perEpoch int
}

func (e epochTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for epoch := 0; epoch*e.perEpoch <= e.iters; epoch++ {
		pos := float64(epoch * e.perEpoch)
		if pos < min || pos > max {
			continue
		}
		tick := plot.Tick{Value: pos}
		if epoch%10 == 0 {
			tick.Label = fmt.Sprintf("%d", epoch)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}
