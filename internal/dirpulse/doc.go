// Package dirpulse provides the single-pass aggregation engine behind dirpulse.
//
// An Aggregator consumes directory entries one at a time and maintains running
// totals, an extension histogram, an age histogram and a bounded selection of
// the largest files. Memory stays proportional to the number of tracked top
// files, regardless of how many entries the traversal yields.
package dirpulse
