// Package analytics aggregates recipient touchpoint feeds into
// campaign-wide engagement metrics.
//
// Aggregate is a pure function of its input: it never reads the clock and
// keeps no state between calls. Memo layers an optional cache on top of it,
// keyed on the feed version the caller supplies.
//
// Calendar dates are always taken in UTC.
package analytics
