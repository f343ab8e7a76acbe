// Package walk provides the traversal sources feeding the dirpulse aggregator.
//
// Two sources are available: Fast walks the operating system filesystem with
// fastwalk, Afero walks any afero filesystem. Both apply the same Filter and
// serialise their callbacks, so the visit function is never called concurrently.
package walk
