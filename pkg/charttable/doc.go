// Package charttable renders grouped chart versions for display.
//
// The default [FormatTable] output is a column-aligned table with one row per
// chart version. [FormatYAML] and [FormatJSON] emit the same data as a list of
// objects for scripting.
package charttable
