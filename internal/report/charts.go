package report

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/structura-app/structura-cli/internal/stats"
)

// Chart rasterization. Each helper renders one dashboard chart to a PNG
// buffer ready to be embedded in the PDF. go-chart refuses degenerate
// inputs (all-zero or single-point series), so callers skip a chart when
// its helper returns errEmptyChart.

var errEmptyChart = fmt.Errorf("not enough data to render chart")

func growthChartPNG(buckets []stats.MonthBucket) ([]byte, error) {
	if len(buckets) < 2 {
		return nil, errEmptyChart
	}
	xs := make([]time.Time, len(buckets))
	ys := make([]float64, len(buckets))
	total := 0
	for i, b := range buckets {
		xs[i] = time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
		ys[i] = float64(b.Count)
		total += b.Count
	}
	if total == 0 {
		return nil, errEmptyChart
	}
	graph := chart.Chart{
		Title:  "New users per month",
		Width:  900,
		Height: 450,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "signups",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render growth chart: %w", err)
	}
	return buf.Bytes(), nil
}

func categoryChartPNG(categories []stats.CategoryCount) ([]byte, error) {
	if len(categories) == 0 {
		return nil, errEmptyChart
	}
	bars := make([]chart.Value, len(categories))
	for i, c := range categories {
		bars[i] = chart.Value{Label: c.Category, Value: float64(c.Count)}
	}
	graph := chart.BarChart{
		Title:    "Posts by category",
		Width:    900,
		Height:   450,
		BarWidth: 60,
		Bars:     bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}

func ratingChartPNG(ratings [5]stats.RatingBucket) ([]byte, error) {
	total := 0
	bars := make([]chart.Value, len(ratings))
	for i, b := range ratings {
		bars[i] = chart.Value{Label: fmt.Sprintf("%d star", b.Stars), Value: float64(b.Count)}
		total += b.Count
	}
	if total == 0 {
		return nil, errEmptyChart
	}
	graph := chart.BarChart{
		Title:    "Review ratings",
		Width:    900,
		Height:   450,
		BarWidth: 60,
		Bars:     bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render rating chart: %w", err)
	}
	return buf.Bytes(), nil
}
