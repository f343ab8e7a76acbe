package walk_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirpulse/internal/dirpulse"
	"github.com/idelchi/dirpulse/internal/walk"
)

// visited collects entries by their slash-separated path relative to root.
type visited map[string]dirpulse.Entry

func collect(t *testing.T, src walk.Source, root string) (visited, []string) {
	t.Helper()

	got := make(visited)

	var failed []string

	err := src.Walk(context.Background(), root, func(e dirpulse.Entry) {
		rel, err := filepath.Rel(root, e.Path())
		assert.NoError(t, err)

		got[filepath.ToSlash(rel)] = e
	}, func(path string, _ error) {
		failed = append(failed, path)
	})
	require.NoError(t, err)

	return got, failed
}

func keys(v visited) []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}

func memTree(t *testing.T) afero.Fs {
	t.Helper()

	mem := afero.NewMemMapFs()

	files := map[string]string{
		"/data/a.txt":             "hello",
		"/data/src/main.go":       "package main",
		"/data/src/deep/x.bin":    "0123456789",
		"/data/.git/config":       "[core]",
		"/data/.env":              "SECRET=1",
		"/data/node_modules/m.js": "x",
	}

	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0o644))
	}

	return mem
}

func TestAferoWalkDefaultFilter(t *testing.T) {
	t.Parallel()

	got, failed := collect(t, walk.Afero{Fs: memTree(t)}, "/data")

	assert.Empty(t, failed)
	assert.Equal(t, []string{
		".", "a.txt", "node_modules", "node_modules/m.js", "src", "src/deep", "src/deep/x.bin", "src/main.go",
	}, keys(got))

	assert.Equal(t, 0, got["."].Depth())
	assert.Equal(t, 1, got["src"].Depth())
	assert.Equal(t, 3, got["src/deep/x.bin"].Depth())
	assert.Equal(t, "x.bin", got["src/deep/x.bin"].Name())

	meta, err := got["src/deep/x.bin"].Metadata()
	require.NoError(t, err)
	assert.Equal(t, dirpulse.KindFile, meta.Kind())
	assert.Equal(t, uint64(10), meta.Size())

	meta, err = got["src"].Metadata()
	require.NoError(t, err)
	assert.Equal(t, dirpulse.KindDir, meta.Kind())
}

func TestAferoWalkFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter walk.Filter
		want   []string
	}{
		{
			name:   "hidden included",
			filter: walk.Filter{Hidden: true},
			want: []string{
				".", ".env", ".git", ".git/config", "a.txt", "node_modules", "node_modules/m.js",
				"src", "src/deep", "src/deep/x.bin", "src/main.go",
			},
		},
		{
			name:   "depth limited",
			filter: walk.Filter{Depth: 1},
			want:   []string{".", "a.txt", "node_modules", "src"},
		},
		{
			name:   "excluded directory is pruned",
			filter: walk.Filter{Excludes: []*regexp.Regexp{regexp.MustCompile(`node_modules`)}},
			want:   []string{".", "a.txt", "src", "src/deep", "src/deep/x.bin", "src/main.go"},
		},
		{
			name:   "excluded file pattern",
			filter: walk.Filter{Excludes: []*regexp.Regexp{regexp.MustCompile(`\.go$`)}},
			want:   []string{".", "a.txt", "node_modules", "node_modules/m.js", "src", "src/deep", "src/deep/x.bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := collect(t, walk.Afero{Fs: memTree(t), Filter: tt.filter}, "/data")
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestAferoWalkZeroModTime(t *testing.T) {
	t.Parallel()

	mem := memTree(t)
	require.NoError(t, mem.Chtimes("/data/a.txt", time.Time{}, time.Time{}))

	got, _ := collect(t, walk.Afero{Fs: mem}, "/data")

	meta, err := got["a.txt"].Metadata()
	require.NoError(t, err)

	_, err = meta.Modified()
	require.ErrorIs(t, err, dirpulse.ErrNoModTime)

	meta, err = got["src/main.go"].Metadata()
	require.NoError(t, err)

	_, err = meta.Modified()
	require.NoError(t, err)
}

func TestAferoWalkMissingRoot(t *testing.T) {
	t.Parallel()

	got, failed := collect(t, walk.Afero{Fs: afero.NewMemMapFs()}, "/missing")

	assert.Empty(t, got)
	assert.Equal(t, []string{"/missing"}, failed)
}

func TestAferoWalkCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := walk.Afero{Fs: memTree(t)}.Walk(ctx, "/data", func(dirpulse.Entry) {}, func(string, error) {})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFastWalk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "one.txt"), []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "two.go"), []byte("22"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cache", "blob"), []byte("333"), 0o600))

	got, failed := collect(t, walk.Fast{}, root)

	assert.Empty(t, failed)
	assert.Equal(t, []string{".", "a", "a/b", "a/b/two.go", "a/one.txt"}, keys(got))
	assert.Equal(t, 3, got["a/b/two.go"].Depth())

	meta, err := got["a/b/two.go"].Metadata()
	require.NoError(t, err)
	assert.Equal(t, dirpulse.KindFile, meta.Kind())
	assert.Equal(t, uint64(2), meta.Size())

	got, _ = collect(t, walk.Fast{Filter: walk.Filter{Hidden: true, Depth: 1}}, root)
	assert.Equal(t, []string{".", ".cache", "a"}, keys(got))
}

func TestFastWalkSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, "real.txt")

	require.NoError(t, os.WriteFile(target, []byte("12345"), 0o600))

	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, _ := collect(t, walk.Fast{}, root)

	meta, err := got["link.txt"].Metadata()
	require.NoError(t, err)
	assert.Equal(t, dirpulse.KindOther, meta.Kind(), "links are not resolved without Follow")

	got, _ = collect(t, walk.Fast{Follow: true}, root)

	meta, err = got["link.txt"].Metadata()
	require.NoError(t, err)
	assert.Equal(t, dirpulse.KindFile, meta.Kind())
	assert.Equal(t, uint64(5), meta.Size())
}

func TestRel(t *testing.T) {
	t.Parallel()

	root := filepath.Join("tmp", "data")

	tests := []struct {
		path  string
		rel   string
		depth int
	}{
		{root, ".", 0},
		{filepath.Join(root, "a"), "a", 1},
		{filepath.Join(root, "a", "b", "c.txt"), filepath.Join("a", "b", "c.txt"), 3},
	}

	for _, tt := range tests {
		rel, depth := walk.Rel(tt.path, root)
		assert.Equal(t, tt.rel, rel, tt.path)
		assert.Equal(t, tt.depth, depth, tt.path)
	}
}

func TestCompilePatterns(t *testing.T) {
	t.Parallel()

	res, err := walk.CompilePatterns([]string{`\.log$`, `tmp/`})
	require.NoError(t, err)
	assert.Len(t, res, 2)

	_, err = walk.CompilePatterns([]string{`(`})
	require.ErrorContains(t, err, `compiling exclusion pattern "("`)
}
