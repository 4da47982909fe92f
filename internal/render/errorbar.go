package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/position.report/internal/records"
)

// Bar is one category of the error chart.
type Bar struct {
	ID    string
	Value float64
}

// ErrorView is everything the error bar chart draws.
type ErrorView struct {
	Title      string
	Subtitle   string
	SeriesName string
	XAxisName  string
	YAxisName  string
	// Bars are in record set order.
	Bars []Bar
	// Summary is nil for an empty record set.
	Summary *records.Summary
}

// ErrorView builds the view model for set.
func (r *Renderer) ErrorView(set records.RecordSet) (ErrorView, error) {
	v := ErrorView{
		Title:      r.T(keyErrorsTitle),
		SeriesName: r.T(keyErrorsSeries),
		XAxisName:  r.T(keyErrorsAxisX),
		YAxisName:  r.T(keyErrorsAxisY),
		Bars:       make([]Bar, 0, set.Len()),
	}
	for _, rec := range set.All() {
		v.Bars = append(v.Bars, Bar{ID: rec.ID, Value: rec.AvgError})
	}

	sum, err := records.Summarize(set)
	var ide *records.InsufficientDataError
	switch {
	case err == nil:
		v.Summary = &sum
		v.Subtitle = r.subtitle(r.T(keyErrorsSummary, sum.Count, sum.Mean, sum.Median, sum.P95, sum.Max, sum.Worst))
	case errors.As(err, &ide):
		v.Subtitle = r.subtitle(r.T(keyErrorsEmpty))
	default:
		return ErrorView{}, err
	}
	return v, nil
}

// ErrorBarChart renders one bar per target, in record order, with height
// AvgError. An empty set renders an empty chart.
func (r *Renderer) ErrorBarChart(set records.RecordSet) ([]Artifact, error) {
	v, err := r.ErrorView(set)
	if err != nil {
		return nil, fmt.Errorf("error chart: %w", err)
	}

	html, err := r.errorHTML(v)
	if err != nil {
		return nil, fmt.Errorf("error chart: %w", err)
	}
	out := []Artifact{{Name: "errors.html", Title: v.Title, ContentType: ContentTypeHTML, Body: html}}

	if r.cfg.PNG {
		png, err := r.errorPNG(v)
		if err != nil {
			return nil, fmt.Errorf("error chart png: %w", err)
		}
		out = append(out, Artifact{Name: "errors.png", Title: v.Title, ContentType: ContentTypePNG, Body: png})
	}
	return out, nil
}

func (r *Renderer) errorHTML(v ErrorView) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.errorChart(v).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) errorChart(v ErrorView) *charts.Bar {
	ids := make([]string, len(v.Bars))
	data := make([]opts.BarData, len(v.Bars))
	for i, b := range v.Bars {
		ids[i] = b.ID
		data[i] = opts.BarData{Name: b.ID, Value: b.Value}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts()),
		charts.WithTitleOpts(opts.Title{Title: v.Title, Subtitle: v.Subtitle, TitleStyle: r.textStyle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: v.XAxisName, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: v.YAxisName,
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Type: "dashed", Opacity: opts.Float(0.7)},
			},
		}),
	)
	bar.SetXAxis(ids).
		AddSeries(v.SeriesName, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", FontFamily: r.cfg.FontFamily}),
		)
	return bar
}
