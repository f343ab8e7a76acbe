// Package scan runs one dirpulse scan: it validates the target, selects a
// traversal source, streams entries into a fresh Aggregator and reports progress.
package scan
