package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/position.report/internal/records"
)

// Point is one plotted position. Displacement is set on estimated points
// only and is the distance from the true position.
type Point struct {
	ID           string
	Pos          r3.Vec
	Displacement float64
}

// SpatialView is everything the spatial comparison chart draws.
type SpatialView struct {
	Title         string
	Subtitle      string
	TrueName      string
	EstimatedName string
	LabelName     string
	AxisNames     [3]string

	True      []Point
	Estimated []Point
	// Labels hold the target IDs at their offset anchor positions.
	Labels []Point

	// Bounds is nil when the axes should auto-scale.
	Bounds *records.AxisBounds
}

// SpatialView builds the view model for set. bounds may be nil.
func (r *Renderer) SpatialView(set records.RecordSet, bounds *records.AxisBounds) SpatialView {
	offset := r3.Vec{X: LabelOffset, Y: LabelOffset, Z: LabelOffset}

	v := SpatialView{
		Title:         r.T(keySpatialTitle),
		TrueName:      r.T(keySpatialTrue),
		EstimatedName: r.T(keySpatialEst),
		LabelName:     r.T(keySpatialLabels),
		AxisNames:     [3]string{r.T(keyAxisX), r.T(keyAxisY), r.T(keyAxisZ)},
		True:          make([]Point, 0, set.Len()),
		Estimated:     make([]Point, 0, set.Len()),
		Labels:        make([]Point, 0, set.Len()),
		Bounds:        bounds,
	}

	for _, rec := range set.All() {
		v.True = append(v.True, Point{ID: rec.ID, Pos: rec.True})
		v.Estimated = append(v.Estimated, Point{ID: rec.ID, Pos: rec.Estimated, Displacement: rec.Displacement()})
		v.Labels = append(v.Labels, Point{ID: rec.ID, Pos: r3.Add(rec.Estimated, offset)})
	}

	empty := ""
	if set.Empty() {
		empty = r.T(keySpatialEmpty)
	}
	v.Subtitle = r.subtitle(empty)
	return v
}

// SpatialComparisonChart renders true and estimated positions in 3D.
// When bounds is nil the axes auto-scale; an empty set renders an empty
// chart.
func (r *Renderer) SpatialComparisonChart(set records.RecordSet, bounds *records.AxisBounds) ([]Artifact, error) {
	v := r.SpatialView(set, bounds)

	html, err := r.spatialHTML(v)
	if err != nil {
		return nil, fmt.Errorf("spatial chart: %w", err)
	}
	out := []Artifact{{Name: "spatial.html", Title: v.Title, ContentType: ContentTypeHTML, Body: html}}

	if r.cfg.PNG {
		png, err := r.spatialPNG(v)
		if err != nil {
			return nil, fmt.Errorf("spatial projection: %w", err)
		}
		out = append(out, Artifact{Name: "spatial_xy.png", Title: v.Title, ContentType: ContentTypePNG, Body: png})
	}
	return out, nil
}

func (r *Renderer) spatialHTML(v SpatialView) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.spatialChart(v).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) spatialChart(v SpatialView) *charts.Scatter3D {
	scatter := charts.NewScatter3D()

	xAxis := opts.XAxis3D{Name: v.AxisNames[0], Type: "value", Show: opts.Bool(true)}
	yAxis := opts.YAxis3D{Name: v.AxisNames[1], Type: "value", Show: opts.Bool(true)}
	zAxis := opts.ZAxis3D{Name: v.AxisNames[2], Type: "value", Show: opts.Bool(true)}
	if v.Bounds != nil {
		xAxis.Min, xAxis.Max = v.Bounds.X()
		yAxis.Min, yAxis.Max = v.Bounds.Y()
		zAxis.Min, zAxis.Max = v.Bounds.Z()
	}

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts()),
		charts.WithTitleOpts(opts.Title{Title: v.Title, Subtitle: v.Subtitle, TitleStyle: r.textStyle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Data:      []string{v.TrueName, v.EstimatedName},
			TextStyle: r.textStyle(),
		}),
		charts.WithXAxis3DOpts(xAxis),
		charts.WithYAxis3DOpts(yAxis),
		charts.WithZAxis3DOpts(zAxis),
		charts.WithGrid3DOpts(opts.Grid3D{
			Show:        opts.Bool(true),
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(false)},
		}),
	)

	scatter.AddSeries(v.TrueName, chart3DData(v.True, false),
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: trueSymbol, SymbolSize: markerSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: trueColor}),
	)
	scatter.AddSeries(v.EstimatedName, chart3DData(v.Estimated, true),
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: estSymbol, SymbolSize: markerSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: estimatedColor}),
	)
	// Labels ride on an invisible series so their anchor can sit at the
	// offset position rather than on the estimated marker.
	scatter.AddSeries(v.LabelName, chart3DData(v.Labels, false),
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: trueSymbol, SymbolSize: 0}),
		charts.WithLabelOpts(opts.Label{
			Show:       opts.Bool(true),
			Formatter:  "{b}",
			Color:      labelColor,
			FontSize:   12,
			FontFamily: r.cfg.FontFamily,
		}),
	)
	return scatter
}

// chart3DData converts points to series data. With displacement set, the
// distance rides along as a fourth dimension so the tooltip shows it.
func chart3DData(pts []Point, displacement bool) []opts.Chart3DData {
	data := make([]opts.Chart3DData, 0, len(pts))
	for _, p := range pts {
		value := []interface{}{p.Pos.X, p.Pos.Y, p.Pos.Z}
		if displacement {
			value = append(value, math.Round(p.Displacement*1000)/1000)
		}
		data = append(data, opts.Chart3DData{Name: p.ID, Value: value})
	}
	return data
}

func (r *Renderer) initOpts() opts.Initialization {
	return opts.Initialization{
		PageTitle:  r.T(keyPageTitle),
		Width:      r.cfg.widthPx(),
		Height:     r.cfg.heightPx(),
		AssetsHost: r.cfg.AssetsHost,
		Theme:      r.cfg.Theme,
	}
}

func (r *Renderer) textStyle() *opts.TextStyle {
	if r.cfg.FontFamily == "" {
		return nil
	}
	return &opts.TextStyle{FontFamily: r.cfg.FontFamily}
}
