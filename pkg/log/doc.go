// Package log builds [log/slog] handlers from command line strings.
package log
