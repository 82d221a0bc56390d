package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// Writer renders run artifacts into an output directory. Artifact names are
// derived deterministically from the tag set: hash markers stripped, tags
// joined with underscores.
type Writer struct {
	outputDir string
}

// NewWriter creates a new report writer
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{outputDir: outputDir}
}

// WriteAll renders the bar chart, the summary table and one word cloud per
// tag, returning the paths of all written artifacts.
func (w *Writer) WriteAll(result sentiment.RunResult) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	var paths []string

	barPath, err := w.WriteBarChart(result)
	if err != nil {
		return paths, err
	}
	paths = append(paths, barPath)

	tablePath, err := w.WriteTable(result)
	if err != nil {
		return paths, err
	}
	paths = append(paths, tablePath)

	for _, tagResult := range result.Results {
		cloudPath, err := w.WriteWordCloud(tagResult.Tag, tagResult.Corpus)
		if err != nil {
			return paths, err
		}
		paths = append(paths, cloudPath)
	}

	return paths, nil
}

// WriteBarChart renders a grouped bar chart of per-tag label counts
func (w *Writer) WriteBarChart(result sentiment.RunResult) (string, error) {
	series := result.Series()

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Tweet Analysis for " + strings.Join(result.Tags, ", "),
	}))

	bar.SetXAxis(result.Tags)
	for _, label := range sentiment.Labels() {
		items := make([]opts.BarData, 0, len(series[label]))
		for _, count := range series[label] {
			items = append(items, opts.BarData{Value: count})
		}
		bar.AddSeries(labelTitle(label), items)
	}

	path := filepath.Join(w.outputDir, "bar_plot_"+fileStem(result.Tags)+".html")
	if err := renderChart(path, bar.Render); err != nil {
		return "", err
	}

	return path, nil
}

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><title>Sentiment Summary</title></head>
<body>
<table border="1" cellpadding="6" style="border-collapse:collapse">
<tr style="background:#C2D4FF">
<th>Hash Tag</th><th>Positive</th><th>Negative</th><th>Neutral</th>
</tr>
{{- range .}}
<tr style="background:#F5F8FF">
<td>{{.Tag}}</td><td>{{.Tally.Positive}}</td><td>{{.Tally.Negative}}</td><td>{{.Tally.Neutral}}</td>
</tr>
{{- end}}
</table>
</body>
</html>
`))

// WriteTable renders the per-tag tally summary table
func (w *Writer) WriteTable(result sentiment.RunResult) (string, error) {
	path := filepath.Join(w.outputDir, "table_"+fileStem(result.Tags)+".html")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating table file: %w", err)
	}
	defer file.Close()

	if err := tableTemplate.Execute(file, result.Results); err != nil {
		return "", fmt.Errorf("error rendering table: %w", err)
	}

	return path, nil
}

// WriteWordCloud renders a word cloud from a tag's normalized corpus
func (w *Writer) WriteWordCloud(tag string, corpus []string) (string, error) {
	frequencies := wordFrequencies(corpus, maxCloudWords)

	data := make([]opts.WordCloudData, 0, len(frequencies))
	for _, wc := range frequencies {
		data = append(data, opts.WordCloudData{Name: wc.word, Value: wc.count})
	}

	cloud := charts.NewWordCloud()
	cloud.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Word Cloud for " + tag,
	}))
	cloud.AddSeries("words", data,
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{SizeRange: []float32{14, 80}}))

	path := filepath.Join(w.outputDir, "word_cloud_"+sanitize(tag)+".html")
	if err := renderChart(path, cloud.Render); err != nil {
		return "", err
	}

	return path, nil
}

func renderChart(path string, render func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating chart file: %w", err)
	}
	defer file.Close()

	if err := render(file); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	return nil
}

// fileStem joins the sanitized tag set into a deterministic artifact stem
func fileStem(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, sanitize(tag))
	}
	return strings.Join(parts, "_")
}

// sanitize strips the hash marker and any character unsafe in a file name
func sanitize(tag string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, tag)
}

func labelTitle(label sentiment.Label) string {
	return strings.ToUpper(string(label[:1])) + string(label[1:])
}
