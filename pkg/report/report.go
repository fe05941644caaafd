package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

// DefaultBarWidth 终端柱状图宽度
const DefaultBarWidth = 30

// Bucket 直方图中的一项
type Bucket struct {
	Extension string
	Count     int
}

// Buckets 按数量降序、扩展名升序排列直方图
func Buckets(hist organizer.Histogram) []Bucket {
	buckets := make([]Bucket, 0, len(hist))
	for ext, count := range hist {
		buckets = append(buckets, Bucket{Extension: ext, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Extension < buckets[j].Extension
	})
	return buckets
}

// DisplacedList 排序后的保留类型
func DisplacedList(displaced map[string]bool) []string {
	types := make([]string, 0, len(displaced))
	for ext := range displaced {
		types = append(types, ext)
	}
	sort.Strings(types)
	return types
}

// WriteSummary 输出运行摘要
func WriteSummary(w io.Writer, result *organizer.RunResult) error {
	lines := []string{
		"",
		titleStyle.Render("Summary:"),
		fmt.Sprintf("Number of files moved: %d", result.MovedCount),
		fmt.Sprintf("File types displaced: %s", strings.Join(DisplacedList(result.DisplacedTypes), ", ")),
		fmt.Sprintf("Time taken to move files: %.2f seconds", result.Elapsed.Seconds()),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// WriteBars 在终端输出横向柱状图
func WriteBars(w io.Writer, hist organizer.Histogram, width int) error {
	if width <= 0 {
		width = DefaultBarWidth
	}

	buckets := Buckets(hist)
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, hintStyle.Render("No files moved."))
		return err
	}

	total, labelWidth := 0, 0
	for _, b := range buckets {
		total += b.Count
		labelWidth = max(labelWidth, lipgloss.Width(b.Extension))
	}

	bar := progress.New(
		progress.WithSolidFill(barFill),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("File Types Moved"))
	sb.WriteString("\n")
	for _, b := range buckets {
		ratio := float64(b.Count) / float64(total)
		label := labelStyle.Width(labelWidth).Render(b.Extension)
		count := countStyle.Render(fmt.Sprintf("%d (%.1f%%)", b.Count, ratio*100))
		sb.WriteString(fmt.Sprintf("%s %s %s\n", label, bar.ViewAs(ratio), count))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
