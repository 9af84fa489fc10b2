// Package listerrors provides the error taxonomy shared by the chart listing
// pipeline.
//
// Each stage wraps its failures with one of these sentinels so callers can
// classify an error with [errors.Is] regardless of how much context was added
// on the way up.
package listerrors
