package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Pager displays text through an external program.
type Pager interface {
	Page(ctx context.Context, text string) error
}

// Document is rendered output ready to be written.
type Document interface {
	String() string
	Lines() int
}

// Sink writes rendered output to stdout or a [Pager], according to its
// [Config]. Create instances with [NewSink].
type Sink struct {
	pager  Pager
	stdout io.Writer
	logger *slog.Logger
	config Config
}

type SinkOpt func(*Sink)

// WithPager sets the [Pager]. Defaults to an [ExecPager] running
// [Config.Command].
func WithPager(p Pager) SinkOpt {
	return func(s *Sink) {
		s.pager = p
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) SinkOpt {
	return func(s *Sink) {
		s.logger = logger
	}
}

// NewSink creates a new [Sink] writing to stdout.
func NewSink(config Config, stdout io.Writer, opts ...SinkOpt) *Sink {
	s := &Sink{
		config: config,
		stdout: stdout,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.pager == nil {
		s.pager = NewExecPager(config.Command, WithOutput(stdout, os.Stderr), WithExecLogger(s.logger))
	}

	return s
}

// Write sends doc to the pager when [Config.ShouldPage] allows it, and to
// stdout otherwise. If the pager cannot be launched, doc is written to stdout
// instead.
func (s *Sink) Write(ctx context.Context, doc Document) error {
	text := doc.String()

	if s.config.ShouldPage(doc.Lines()) {
		err := s.pager.Page(ctx, text)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrPagerStart) {
			return fmt.Errorf("page output: %w", err)
		}

		s.logger.Warn("pager unavailable, writing to stdout", slog.Any("err", err))
	}

	if _, err := io.WriteString(s.stdout, text); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	return nil
}
