package pager

import (
	"strings"
)

const (
	// DefaultThreshold is the largest line count written without paging.
	DefaultThreshold = 25

	// DefaultCommand is used when $PAGER is unset or empty.
	DefaultCommand = "less"
)

// Config holds the resolved paging settings. It is built once at startup and
// passed to [NewSink].
type Config struct {
	// Command is the pager command line, e.g. "less -R".
	Command string
	// Threshold is the largest line count written directly to stdout.
	Threshold int
	// Disabled turns paging off regardless of the line count.
	Disabled bool
	// Terminal reports whether stdout is attached to a terminal.
	Terminal bool
}

// DefaultConfig returns a [Config] that pages long output on a terminal.
func DefaultConfig() Config {
	return Config{
		Command:   DefaultCommand,
		Threshold: DefaultThreshold,
		Terminal:  true,
	}
}

// ShouldPage reports whether output with the given number of lines should be
// sent to the pager.
func (c Config) ShouldPage(lines int) bool {
	if c.Disabled || !c.Terminal {
		return false
	}

	return lines > c.Threshold
}

// IsTruthy reports whether an environment variable value enables a toggle.
// Any non-empty value other than "0", "false", "no" or "off" is truthy.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}

	return true
}
