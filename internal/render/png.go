package render

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PNG palettes matching the named HTML colours.
var (
	pngGreen   = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	pngRed     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	pngSkyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// spatialPNG draws the X/Y projection of the spatial view.
func (r *Renderer) spatialPNG(v SpatialView) ([]byte, error) {
	p := plot.New()
	p.Title.Text = v.Title
	p.X.Label.Text = v.AxisNames[0]
	p.Y.Label.Text = v.AxisNames[1]
	p.Add(plotter.NewGrid())

	truePts := make(plotter.XYs, len(v.True))
	for i, pt := range v.True {
		truePts[i] = plotter.XY{X: pt.Pos.X, Y: pt.Pos.Y}
	}
	trueScatter, err := plotter.NewScatter(truePts)
	if err != nil {
		return nil, err
	}
	trueScatter.GlyphStyle.Color = pngGreen
	trueScatter.GlyphStyle.Shape = draw.CircleGlyph{}
	trueScatter.GlyphStyle.Radius = vg.Points(4)

	estPts := make(plotter.XYs, len(v.Estimated))
	for i, pt := range v.Estimated {
		estPts[i] = plotter.XY{X: pt.Pos.X, Y: pt.Pos.Y}
	}
	estScatter, err := plotter.NewScatter(estPts)
	if err != nil {
		return nil, err
	}
	estScatter.GlyphStyle.Color = pngRed
	estScatter.GlyphStyle.Shape = draw.TriangleGlyph{}
	estScatter.GlyphStyle.Radius = vg.Points(4)

	lbl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(v.Labels)),
		Labels: make([]string, len(v.Labels)),
	}
	for i, pt := range v.Labels {
		lbl.XYs[i] = plotter.XY{X: pt.Pos.X, Y: pt.Pos.Y}
		lbl.Labels[i] = pt.ID
	}
	labels, err := plotter.NewLabels(lbl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = pngRed
	}

	p.Add(trueScatter, estScatter, labels)
	p.Legend.Add(v.TrueName, trueScatter)
	p.Legend.Add(v.EstimatedName, estScatter)
	p.Legend.Top = true

	if v.Bounds != nil {
		p.X.Min, p.X.Max = v.Bounds.X()
		p.Y.Min, p.Y.Max = v.Bounds.Y()
	}

	return r.encodePNG(p)
}

// errorPNG draws the error bar chart. Bars are only added when there is
// data; an empty view yields axes and a title.
func (r *Renderer) errorPNG(v ErrorView) ([]byte, error) {
	p := plot.New()
	p.Title.Text = v.Title
	p.X.Label.Text = v.XAxisName
	p.Y.Label.Text = v.YAxisName
	p.Y.Min = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(grid)

	if len(v.Bars) > 0 {
		values := make(plotter.Values, len(v.Bars))
		names := make([]string, len(v.Bars))
		for i, b := range v.Bars {
			values[i] = b.Value
			names[i] = b.ID
		}
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return nil, err
		}
		bars.Color = pngSkyBlue
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(names...)
	}

	return r.encodePNG(p)
}

func (r *Renderer) encodePNG(p *plot.Plot) ([]byte, error) {
	w := vg.Length(r.cfg.Width) * vg.Inch / 96
	h := vg.Length(r.cfg.Height) * vg.Inch / 96
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
