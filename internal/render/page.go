package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/banshee-data/position.report/internal/records"
)

// ReportPage renders both charts onto a single HTML page, spatial chart
// first. bounds may be nil.
func (r *Renderer) ReportPage(set records.RecordSet, bounds *records.AxisBounds) (Artifact, error) {
	spatial := r.SpatialView(set, bounds)
	errs, err := r.ErrorView(set)
	if err != nil {
		return Artifact{}, fmt.Errorf("report page: %w", err)
	}

	page := components.NewPage()
	page.SetPageTitle(r.T(keyPageTitle)).
		SetAssetsHost(r.cfg.AssetsHost).
		SetLayout(components.PageFlexLayout)
	page.AddCharts(r.spatialChart(spatial), r.errorChart(errs))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return Artifact{}, fmt.Errorf("report page: %w", err)
	}
	return Artifact{Name: "report.html", Title: r.T(keyPageTitle), ContentType: ContentTypeHTML, Body: buf.Bytes()}, nil
}
