package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/helm-list-charts/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		level    string
		format   string
		contains string
	}{
		"text": {
			level:    "warn",
			format:   "text",
			contains: "something happened",
		},
		"logfmt": {
			level:    "info",
			format:   "logfmt",
			contains: `msg="something happened"`,
		},
		"json": {
			level:    "debug",
			format:   "json",
			contains: `"msg":"something happened"`,
		},
		"invalid level": {
			level:  "loud",
			format: "text",
			err:    log.ErrInvalidLevel,
		},
		"invalid format": {
			level:  "warn",
			format: "xml",
			err:    log.ErrInvalidFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}

			h, err := log.CreateHandlerWithStrings(buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)

			slog.New(h).Warn("something happened", slog.String("chart", "foo"))
			assert.Contains(t, buf.String(), tc.contains)
			assert.Contains(t, buf.String(), "foo")
		})
	}
}

func TestHandlerLevel(t *testing.T) {
	t.Parallel()

	h, err := log.CreateHandlerWithStrings(&bytes.Buffer{}, "warn", "text")
	require.NoError(t, err)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"trace":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"fatal":   slog.LevelError,
	}

	for in, want := range tcs {
		got, err := log.GetLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
