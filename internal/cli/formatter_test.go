package cli_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirpulse/internal/cli"
	"github.com/idelchi/dirpulse/internal/dirpulse"
	"github.com/idelchi/dirpulse/internal/scan"
)

func sampleReport() *scan.Report {
	modified := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

	return &scan.Report{
		Root: "photos",
		Summary: &dirpulse.Summary{
			TotalSize: 3 << 20,
			FileCount: 4,
			DirCount:  1,
			Extensions: dirpulse.ExtensionHistogram{
				"jpg": {Count: 3, Size: 2 << 20},
				"mov": {Count: 1, Size: 1 << 20},
			},
			Age: dirpulse.AgeHistogram{
				Fresh: dirpulse.BucketStats{Count: 1, Size: 1 << 20},
				Stale: dirpulse.BucketStats{Count: 3, Size: 2 << 20},
			},
			TopFiles: []dirpulse.FileRecord{
				{Name: "clip.mov", Path: "photos/clip.mov", Size: 1 << 20, Ext: "mov", Modified: modified},
			},
			TopN:     1,
			TopShare: 100.0 / 3,
		},
		Skipped: 2,
		Errors:  1,
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestPrintTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, cli.PrintTable(sampleReport(), &buf, true))

	out := buf.String()

	for _, want := range []string{
		"dirpulse · photos",
		"2.0 MiB Stale · Largest: clip.mov (1.0 MiB) · Top 1 = 33.33%",
		"4 files · 1 directories · 3.0 MiB total",
		"Top 1 Largest",
		"By Extension",
		".jpg",
		"66.7%",
		"Aging (30 days - 6 mo)",
		"Skipped: 2 · Errors: 1 · Elapsed: 1.5s",
	} {
		assert.Contains(t, out, want)
	}

	_, extensions, found := strings.Cut(out, "By Extension")
	require.True(t, found)
	assert.Less(t, strings.Index(extensions, ".jpg"), strings.Index(extensions, ".mov"), "extensions sorted by count")
	assert.NotContains(t, out, "Scan interrupted")
}

func TestPrintTableEmpty(t *testing.T) {
	t.Parallel()

	report := &scan.Report{
		Root:    "empty",
		Summary: &dirpulse.Summary{Extensions: dirpulse.ExtensionHistogram{}, TopN: 10},
		Partial: true,
	}

	var buf bytes.Buffer
	require.NoError(t, cli.PrintTable(report, &buf, true))

	out := buf.String()
	assert.Contains(t, out, "Largest: none")
	assert.Contains(t, out, "Top 10 = 0.00%")
	assert.Contains(t, out, "Scan interrupted")
}

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, cli.PrintJSON(sampleReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, `"root": "photos"`)
	assert.Contains(t, out, `"total_size": 3145728`)
	assert.Contains(t, out, `"ext": "mov"`)
	assert.Contains(t, out, `"stale": {`)
}

func TestPrintYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, cli.PrintYAML(sampleReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "root: photos")
	assert.Contains(t, out, "file_count: 4")
	assert.Contains(t, out, "name: clip.mov")
	assert.Contains(t, out, "elapsed: 1.5s")
}
