package report

import (
	"fmt"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-cleaner/pkg/logger"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

const (
	axisFileType = "File Type"
	axisCount    = "Number of Files"
	seriesName   = "Files"
)

// RenderCharts 将五种图表写入一个 HTML 页面
// 饼图、柱状图、折线图、散点图和横向柱状图
func RenderCharts(fs afero.Fs, path string, hist organizer.Histogram) error {
	if len(hist) == 0 {
		return fmt.Errorf("没有可绘制的数据")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	buckets := Buckets(hist)
	page := components.NewPage()
	page.PageTitle = "Desktop Cleaner"
	page.AddCharts(
		pieChart(buckets),
		barChart(buckets),
		lineChart(buckets),
		scatterChart(buckets),
		horizontalBarChart(buckets),
	)

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建图表目录失败: %w", err)
		}
	}

	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("创建图表文件失败: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("渲染图表失败: %w", err)
	}

	logger.Get().Info().Str("path", path).Int("types", len(buckets)).Msg("图表已生成")
	return nil
}

func labels(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Extension
	}
	return out
}

func axisOpts(xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: xName, AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	}
}

func pieChart(buckets []Bucket) *charts.Pie {
	items := make([]opts.PieData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.PieData{Name: b.Extension, Value: b.Count}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "File Types Moved"}))
	pie.AddSeries(seriesName, items,
		charts.WithLabelOpts(opts.Label{Formatter: "{b}: {d}%"}),
	)
	return pie
}

func barChart(buckets []Bucket) *charts.Bar {
	items := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(axisOpts(axisFileType, axisCount),
		charts.WithTitleOpts(opts.Title{Title: "Histogram of File Types Moved"}))...)
	bar.SetXAxis(labels(buckets)).AddSeries(seriesName, items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "blue"}),
	)
	return bar
}

func lineChart(buckets []Bucket) *charts.Line {
	items := make([]opts.LineData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.LineData{Value: b.Count, Symbol: "circle", SymbolSize: 8}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(axisOpts(axisFileType, axisCount),
		charts.WithTitleOpts(opts.Title{Title: "Line Graph of File Types Moved"}))...)
	line.SetXAxis(labels(buckets)).AddSeries(seriesName, items)
	return line
}

func scatterChart(buckets []Bucket) *charts.Scatter {
	items := make([]opts.ScatterData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.ScatterData{Value: b.Count, Symbol: "circle", SymbolSize: 12}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(axisOpts(axisFileType, axisCount),
		charts.WithTitleOpts(opts.Title{Title: "Scatter Plot of File Types Moved"}))...)
	scatter.SetXAxis(labels(buckets)).AddSeries(seriesName, items)
	return scatter
}

func horizontalBarChart(buckets []Bucket) *charts.Bar {
	items := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		items[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Horizontal Bar Graph of File Types Moved"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisCount}),
		charts.WithYAxisOpts(opts.YAxis{Name: axisFileType}),
	)
	bar.SetXAxis(labels(buckets)).AddSeries(seriesName, items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "green"}),
	)
	bar.XYReversal()
	return bar
}
