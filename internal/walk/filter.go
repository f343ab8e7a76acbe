package walk

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter decides which entries of a walk are visited.
type Filter struct {
	// Hidden includes entries whose name starts with a dot.
	Hidden bool
	// Depth is the maximum traversal depth below the root (0=unlimited).
	Depth int
	// Excludes contains patterns matched against the slash-separated path.
	Excludes []*regexp.Regexp
}

// Skip reports whether the entry at path should be left out, together with
// the reason. rel is the path relative to the walk root; the root itself is
// never skipped.
func (f Filter) Skip(path, rel string, depth int) (bool, string) {
	if depth == 0 {
		return false, ""
	}

	if f.Depth > 0 && depth > f.Depth {
		return true, "beyond depth"
	}

	if !f.Hidden && isHidden(rel) {
		return true, "hidden"
	}

	if re := matchPattern(path, f.Excludes); re != nil {
		return true, "matched regex " + re.String()
	}

	return false, ""
}

// isHidden reports whether any element of the relative path starts with a dot.
// Checking every element also covers children of followed symlinks whose
// hidden parent could not be pruned.
func isHidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}

	return false
}

// CompilePatterns compiles exclusion patterns.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

// matchPattern returns the first pattern matching path, or nil.
func matchPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// Rel returns path relative to root and its depth; the root has depth 0.
func Rel(path, root string) (string, int) {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = strings.TrimPrefix(path, root)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	}

	if relPath == "" || relPath == "." {
		return ".", 0
	}

	return relPath, strings.Count(relPath, string(filepath.Separator)) + 1
}
