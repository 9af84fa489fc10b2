// Package pager decides where rendered output goes: straight to stdout, or
// through an external pager program when the output is long and the user is
// at a terminal.
package pager
