package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	photoscore "github.com/oj-kentd/photo-analysis-app"
)

// writeReport renders the ranked scores as an HTML bar chart plus the
// per-photo simulated score distributions as line series.
func writeReport(results []photoscore.Analysis, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, "ranking.html")
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := rankingChart(results).Render(f); err != nil {
		return "", fmt.Errorf("failed to render ranking chart: %w", err)
	}
	if err := distributionChart(results).Render(f); err != nil {
		return "", fmt.Errorf("failed to render distribution chart: %w", err)
	}
	return outputPath, nil
}

// rankingChart shows the fused score per photo alongside its technical and
// aesthetic components.
func rankingChart(results []photoscore.Analysis) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Photo Ranking",
			Subtitle: "Overall score with technical and aesthetic components",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Score",
			Type: "value",
			Min:  0,
			Max:  1,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "5%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	var xAxis []string
	var overall, technical, aesthetic []opts.BarData
	for _, r := range results {
		xAxis = append(xAxis, r.PhotoID)
		overall = append(overall, opts.BarData{Value: r.Overall})
		technical = append(technical, opts.BarData{Value: r.Technical.Overall})
		aesthetic = append(aesthetic, opts.BarData{Value: r.Aesthetic.Mean / 10})
	}

	bar.SetXAxis(xAxis).
		AddSeries("Overall", overall).
		AddSeries("Technical", technical).
		AddSeries("Aesthetic /10", aesthetic)
	return bar
}

// distributionChart overlays the 10-bucket simulated aesthetic score
// distributions of every photo.
func distributionChart(results []photoscore.Analysis) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Aesthetic Score Distributions",
			Subtitle: "Simulated confidence spread around each photo's mean score",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Score bucket",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Probability",
			Type: "value",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	buckets := make([]string, 10)
	for i := range buckets {
		buckets[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(buckets)

	for _, r := range results {
		data := make([]opts.LineData, 10)
		for i, p := range r.Aesthetic.Distribution {
			data[i] = opts.LineData{Value: p}
		}
		line.AddSeries(r.PhotoID, data, charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}))
	}
	return line
}
