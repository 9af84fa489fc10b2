package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ErrPagerStart indicates the pager program could not be launched.
var ErrPagerStart = errors.New("start pager")

// CmdError describes a failed pager invocation.
type CmdError struct {
	Cause error
	Args  string
}

func (ce *CmdError) Error() string {
	return fmt.Sprintf("`%s` failed: %v", ce.Args, ce.Cause)
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

// ExecPager runs an external pager program with the text on its stdin.
type ExecPager struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	command string
	env     []string
}

type ExecPagerOpt func(*ExecPager)

// WithOutput sets the pager's stdout and stderr. Defaults to [os.Stdout] and
// [os.Stderr].
func WithOutput(stdout, stderr io.Writer) ExecPagerOpt {
	return func(p *ExecPager) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithEnv sets the environment the pager starts with. Defaults to
// [os.Environ].
func WithEnv(env []string) ExecPagerOpt {
	return func(p *ExecPager) {
		p.env = env
	}
}

// WithExecLogger sets the logger. Defaults to [slog.Default].
func WithExecLogger(logger *slog.Logger) ExecPagerOpt {
	return func(p *ExecPager) {
		p.logger = logger
	}
}

// NewExecPager creates a new [ExecPager] for the given command line.
func NewExecPager(command string, opts ...ExecPagerOpt) *ExecPager {
	p := &ExecPager{
		command: command,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.env == nil {
		p.env = os.Environ()
	}

	return p
}

// Args splits the command line into program and arguments.
func (p *ExecPager) Args() ([]string, error) {
	args, err := shlex.Split(p.command)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", p.command, err)
	}

	if len(args) == 0 {
		return nil, errors.New("empty command")
	}

	return args, nil
}

// Page starts the pager, writes text to it, and waits for it to exit. Errors
// wrap [ErrPagerStart] when the program could not be launched. A non-zero exit
// status after a successful launch is not an error.
func (p *ExecPager) Page(ctx context.Context, text string) error {
	args, err := p.Args()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPagerStart, err)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr
	cmd.Env = withLess(p.env)

	p.logger.Debug("starting pager", slog.String("cmd", strings.Join(cmd.Args, " ")))

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrPagerStart, &CmdError{Args: p.command, Cause: err})
	}

	if err := cmd.Wait(); err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			p.logger.Debug("pager exited",
				slog.String("cmd", p.command),
				slog.Int("code", exitErr.ExitCode()),
			)

			return nil
		}

		return &CmdError{Args: p.command, Cause: err}
	}

	return nil
}

// withLess returns env with LESS=FRX appended when LESS is not already set.
func withLess(env []string) []string {
	for _, kv := range env {
		if strings.HasPrefix(kv, "LESS=") {
			return env
		}
	}

	out := make([]string, 0, len(env)+1)
	out = append(out, env...)

	return append(out, "LESS=FRX")
}
