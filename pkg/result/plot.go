package result

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/Coyote-git/Better-keyboard/pkg/anneal"
	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

var (
	ringColor   = color.Gray{Y: 0x88}
	bigramColor = color.NRGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0x50}
	gapColor    = color.Gray{Y: 0xAA}
)

// gapNames label the first gaps in configuration order, matching the
// shipped keyboard (left gap = backspace, right gap = reserved).
var gapNames = []string{"backspace", "reserved"}

// SaveHistoryPlot renders a run's energy trajectory to an image file
// (format chosen by extension, e.g. .png).
func SaveHistoryPlot(path string, history []anneal.Sample) error {
	p := plot.New()
	p.Title.Text = "Annealing energy"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "energy"

	pts := make(plotter.XYs, len(history))
	for i, s := range history {
		pts[i].X = float64(s.Iteration)
		pts[i].Y = s.Energy
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("history plot: %w", err)
	}
	p.Add(line)
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// SaveLayoutPlot renders an exported layout: dashed ring outlines with the
// gaps cut out, each letter at its slot (sized by frequency), and lines
// between the top bigram pairs.
func SaveLayoutPlot(path string, lay *LayoutJSON, tables *freq.Tables) error {
	p := plot.New()
	p.HideAxes()
	lim := lay.Metadata.ROuter + 0.8
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	cfg := lay.GeometryConfig()
	if err := addRingOutlines(p, cfg); err != nil {
		return err
	}
	if err := addBigramLines(p, lay, tables, 20); err != nil {
		return err
	}
	if err := addLetterLabels(p, lay, tables); err != nil {
		return err
	}
	if err := addGapLabels(p, cfg); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

// addRingOutlines draws both rings as dashed arcs, sampled per degree and
// broken wherever the angle falls inside a gap window.
func addRingOutlines(p *plot.Plot, cfg geometry.Config) error {
	for _, r := range []float64{cfg.RInner, cfg.ROuter} {
		var arc plotter.XYs
		flush := func() error {
			if len(arc) < 2 {
				arc = arc[:0]
				return nil
			}
			line, err := plotter.NewLine(arc)
			if err != nil {
				return fmt.Errorf("layout plot: %w", err)
			}
			line.Color = ringColor
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(line)
			arc = nil
			return nil
		}
		for deg := 0.0; deg <= 360; deg++ {
			if cfg.InGap(deg) {
				if err := flush(); err != nil {
					return err
				}
				continue
			}
			rad := deg * math.Pi / 180
			arc = append(arc, plotter.XY{X: r * math.Cos(rad), Y: r * math.Sin(rad)})
		}
		if err := flush(); err != nil {
			return err
		}
	}
	return nil
}

// addBigramLines draws a segment between the slots of each of the top n
// bigram pairs present in the layout.
func addBigramLines(p *plot.Plot, lay *LayoutJSON, tables *freq.Tables, n int) error {
	pos := make(map[string]plotter.XY, len(lay.Slots))
	for _, s := range lay.Slots {
		pos[s.Letter] = plotter.XY{X: s.X, Y: s.Y}
	}
	for _, pair := range tables.TopBigrams(n) {
		a, okA := pos[string(pair.First)]
		b, okB := pos[string(pair.Second)]
		if !okA || !okB {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{a, b})
		if err != nil {
			return fmt.Errorf("layout plot: %w", err)
		}
		line.Color = bigramColor
		p.Add(line)
	}
	return nil
}

// addLetterLabels places each letter at its slot, scaled by frequency so
// common letters stand out.
func addLetterLabels(p *plot.Plot, lay *LayoutJSON, tables *freq.Tables) error {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(lay.Slots)),
		Labels: make([]string, len(lay.Slots)),
	}
	for i, s := range lay.Slots {
		xyl.XYs[i] = plotter.XY{X: s.X, Y: s.Y}
		xyl.Labels[i] = s.Letter
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return fmt.Errorf("layout plot: %w", err)
	}
	for i, s := range lay.Slots {
		f := 0.0
		if idx := freq.Index(s.Letter[0]); idx >= 0 {
			f = tables.LetterFreq(idx)
		}
		labels.TextStyle[i].Font.Size = vg.Points(10 + f)
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)
	return nil
}

// addGapLabels names the gap zones between the rings.
func addGapLabels(p *plot.Plot, cfg geometry.Config) error {
	n := len(cfg.GapAngles)
	if n > len(gapNames) {
		n = len(gapNames)
	}
	if n == 0 {
		return nil
	}
	xyl := plotter.XYLabels{}
	midR := (cfg.RInner + cfg.ROuter) / 2
	for i := 0; i < n; i++ {
		rad := cfg.GapAngles[i] * math.Pi / 180
		xyl.XYs = append(xyl.XYs, plotter.XY{X: midR * math.Cos(rad), Y: midR * math.Sin(rad)})
		xyl.Labels = append(xyl.Labels, gapNames[i])
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return fmt.Errorf("layout plot: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = gapColor
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)
	return nil
}
