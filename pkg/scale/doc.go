// Package scale maps data values onto pixel ranges.
//
// Scales are immutable values built once per layout pass:
//
//   - [Linear] maps a continuous domain onto a continuous range, with
//     optional nice rounding of the domain, pixel rounding and clamping.
//   - [Time] is a linear scale over timestamps with calendar-aware ticks.
//   - [Band] divides a range into evenly spaced bands for categories.
//   - [Ordinal] and [Palette] map categories onto colors, cycling when the
//     domain outgrows the palette.
//   - [Sequential] interpolates between two colors in CIE-Lab space.
//
// A degenerate domain (both ends equal) maps every input to the midpoint of
// the range, so an empty or constant dataset never divides by zero.
// Non-finite inputs are treated as zero.
package scale
