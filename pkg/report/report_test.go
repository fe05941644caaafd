package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

func TestBuckets_Order(t *testing.T) {
	buckets := Buckets(organizer.Histogram{"txt": 2, "png": 5, "doc": 2, "zip": 1})
	assert.Equal(t, []Bucket{
		{Extension: "png", Count: 5},
		{Extension: "doc", Count: 2},
		{Extension: "txt", Count: 2},
		{Extension: "zip", Count: 1},
	}, buckets)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, &organizer.RunResult{
		MovedCount:     4,
		DisplacedTypes: map[string]bool{"txt": true, "docx": true},
		Elapsed:        2345 * time.Millisecond,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "Number of files moved: 4\n")
	assert.Contains(t, out, "File types displaced: docx, txt\n")
	assert.Contains(t, out, "Time taken to move files: 2.35 seconds\n")
}

func TestWriteBars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBars(&buf, organizer.Histogram{"jpg": 3, "txt": 1}, 20))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "File Types Moved")
	assert.Contains(t, lines[1], "jpg")
	assert.Contains(t, lines[1], "3 (75.0%)")
	assert.Contains(t, lines[2], "txt")
	assert.Contains(t, lines[2], "1 (25.0%)")
}

func TestWriteBars_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBars(&buf, organizer.Histogram{}, 0))
	assert.Contains(t, buf.String(), "No files moved.")
}

func TestRenderCharts(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/reports/charts.html"

	require.NoError(t, RenderCharts(fs, path, organizer.Histogram{"pdf": 2, "png": 1}))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	html := string(data)
	for _, title := range []string{
		"File Types Moved",
		"Histogram of File Types Moved",
		"Line Graph of File Types Moved",
		"Scatter Plot of File Types Moved",
		"Horizontal Bar Graph of File Types Moved",
	} {
		assert.Contains(t, html, title)
	}
	assert.Contains(t, html, "pdf")
}

func TestRenderCharts_Empty(t *testing.T) {
	assert.Error(t, RenderCharts(afero.NewMemMapFs(), "charts.html", nil))
}
