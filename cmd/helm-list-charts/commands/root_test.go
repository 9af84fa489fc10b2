package commands_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/helm-list-charts/cmd/helm-list-charts/commands"
	"github.com/macropower/helm-list-charts/pkg/chartindex"
	"github.com/macropower/helm-list-charts/pkg/helmtest"
	"github.com/macropower/helm-list-charts/pkg/listerrors"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := commands.NewRootCmd("test_list", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()

	return stdout.String(), stderr.String(), err
}

// firstColumns returns the CHART and VERSION cells of each table row.
func firstColumns(out string) [][]string {
	cols := [][]string{}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n")[1:] {
		fields := strings.Fields(line)
		cols = append(cols, []string{fields[0], fields[2]})
	}

	return cols
}

func TestRootCmdList(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "index.yaml"))
	source := srv.URL + "/charts"

	tcs := map[string]struct {
		args []string
		want [][]string
	}{
		"all charts": {
			want: [][]string{
				{"Alpha", "0.1.0"},
				{"common", "1.0.0"},
				{"sealed-secrets", "2.17.0-rc.1"},
				{"sealed-secrets", "2.16.2"},
				{"sealed-secrets", "2.16.1"},
			},
		},
		"exact chart name ignores case": {
			args: []string{"--chart", "SEALED-SECRETS"},
			want: [][]string{
				{"sealed-secrets", "2.17.0-rc.1"},
				{"sealed-secrets", "2.16.2"},
				{"sealed-secrets", "2.16.1"},
			},
		},
		"substring match": {
			args: []string{"--chart", "seal", "--match", "substring"},
			want: [][]string{
				{"sealed-secrets", "2.17.0-rc.1"},
				{"sealed-secrets", "2.16.2"},
				{"sealed-secrets", "2.16.1"},
			},
		},
		"library type": {
			args: []string{"--type", "Library"},
			want: [][]string{
				{"common", "1.0.0"},
			},
		},
		"kube version": {
			args: []string{"--kube-version", "1.15.0"},
			want: [][]string{
				{"Alpha", "0.1.0"},
				{"common", "1.0.0"},
				{"sealed-secrets", "2.17.0-rc.1"},
			},
		},
		"index url given directly": {
			args: []string{"--source", srv.URL + helmtest.IndexPath, "--chart", "common"},
			want: [][]string{
				{"common", "1.0.0"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"--source", source, "--no-pager"}, tc.args...)

			stdout, _, err := runRoot(t, args...)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(stdout, "CHART"), stdout)
			assert.Equal(t, tc.want, firstColumns(stdout))
		})
	}
}

func TestRootCmdListPlaceholders(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "index.yaml"))

	stdout, _, err := runRoot(t, "--source", srv.URL+"/charts", "--chart", "alpha", "--no-pager")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "0.1.0 (deprecated)")
	assert.Contains(t, lines[1], "Starter chart.")
	assert.Equal(t, 3, strings.Count(lines[1], "<unspecified>"), lines[1])
}

func TestRootCmdListNoMatches(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "index.yaml"))

	stdout, stderr, err := runRoot(t, "--source", srv.URL+"/charts", "--chart", "nope", "--no-pager")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(stdout, "\n"))
	assert.True(t, strings.HasPrefix(stdout, "CHART"))
	assert.Contains(t, stderr, "no charts matched")
}

func TestRootCmdListJSON(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "index.yaml"))

	stdout, _, err := runRoot(t, "--source", srv.URL+"/charts", "--chart", "sealed-secrets", "-o", "json")
	require.NoError(t, err)

	got := []map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "2.17.0-rc.1", got[0]["version"])
	assert.Equal(t, "2.16.1", got[2]["version"])
}

func TestRootCmdListSkipsInvalidEntries(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "invalid-versions.yaml"))

	stdout, stderr, err := runRoot(t, "--source", srv.URL+"/charts", "--chart", "foo")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"foo", "2.0.0"}, {"foo", "1.0.0"}}, firstColumns(stdout))
	assert.Contains(t, stderr, "skipping invalid index entry")

	_, _, err = runRoot(t, "--source", srv.URL+"/charts", "--strict")
	require.ErrorIs(t, err, listerrors.ErrParse)
	require.ErrorIs(t, err, chartindex.ErrInvalidVersion)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRootCmdOutputError(t *testing.T) {
	srv := helmtest.NewIndexServer(t, helmtest.Fixture(t, "index.yaml"))

	rootCmd := commands.NewRootCmd("test_output", "", "")
	rootCmd.SetArgs([]string{"--source", srv.URL + "/charts", "--no-pager"})
	rootCmd.SetOut(failingWriter{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, listerrors.ErrOutput)
	assert.NotErrorIs(t, err, listerrors.ErrRender)
	assert.ErrorContains(t, err, "disk full")
}

func TestRootCmdErrors(t *testing.T) {
	notFound := helmtest.NewStatusServer(t, http.StatusNotFound)
	garbage := helmtest.NewIndexServer(t, []byte("entries: [not, a, map]"))

	tcs := map[string]struct {
		wantErr error
		args    []string
	}{
		"missing source": {
			args:    []string{},
			wantErr: listerrors.ErrInvalidArguments,
		},
		"unsupported scheme": {
			args:    []string{"--source", "ftp://charts.example.com"},
			wantErr: listerrors.ErrInvalidArguments,
		},
		"invalid match mode": {
			args:    []string{"--source", "https://charts.example.com", "--match", "fuzzy"},
			wantErr: chartindex.ErrInvalidMatchMode,
		},
		"invalid kube version": {
			args:    []string{"--source", "https://charts.example.com", "--kube-version", "latest"},
			wantErr: chartindex.ErrInvalidKubeVersion,
		},
		"invalid output": {
			args:    []string{"--source", "https://charts.example.com", "-o", "xml"},
			wantErr: listerrors.ErrInvalidArguments,
		},
		"invalid max index size": {
			args:    []string{"--source", "https://charts.example.com", "--max-index-size", "lots"},
			wantErr: listerrors.ErrInvalidArguments,
		},
		"not found": {
			args:    []string{"--source", notFound.URL},
			wantErr: listerrors.ErrFetch,
		},
		"malformed index": {
			args:    []string{"--source", garbage.URL + "/charts"},
			wantErr: listerrors.ErrParse,
		},
		"index too large": {
			args: []string{
				"--source", garbage.URL + "/charts",
				"--max-index-size", "8",
			},
			wantErr: listerrors.ErrFetch,
		},
		"invalid log level": {
			args:    []string{"--source", "https://charts.example.com", "--log-level", "loud"},
			wantErr: commands.ErrLogHandlerFailed,
		},
		"unexpected argument": {
			args: []string{"--source", "https://charts.example.com", "extra"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := runRoot(t, append(tc.args, "--no-pager")...)
			require.Error(t, err)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}

			assert.Empty(t, stdout)
		})
	}
}

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		wantErr   error
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"debug level": {
			logLevel:  "debug",
			logFormat: "logfmt",
		},
		"invalid log level": {
			logLevel:  "invalid",
			logFormat: "text",
			wantErr:   commands.ErrLogHandlerFailed,
		},
		"invalid log format": {
			logLevel:  "warn",
			logFormat: "invalid",
			wantErr:   commands.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := runRoot(t,
				"--log-level", tc.logLevel,
				"--log-format", tc.logFormat,
				"version",
			)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Regexp(t, `\d+\.\d+\.\d+`, stdout)
			}
		})
	}
}

func TestRootCmdArgPointers(t *testing.T) {
	args := commands.NewRootArgs()

	assert.Empty(t, args.GetLogLevel())
	assert.Empty(t, args.GetLogFormat())
	assert.Empty(t, args.GetSource())
	assert.Zero(t, args.GetTimeout())
	assert.Zero(t, args.GetPagerThreshold())
	assert.False(t, args.GetNoPager())
}
