package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/macropower/helm-list-charts/pkg/pager"
)

// EnvPrefix is the prefix of environment variables that set flags.
const EnvPrefix = "HELM_LIST_CHARTS"

// Flags that are never read from HELM_LIST_CHARTS_<FLAG>. no-pager has its
// own truthiness rules, see [ResolvePagerConfig].
var envSkipFlags = map[string]bool{
	"help":     true,
	"version":  true,
	"no-pager": true,
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// bindFlags sets every flag that was not given on the command line from its
// environment variable, if one is set.
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	var merr error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || envSkipFlags[f.Name] || !v.IsSet(f.Name) {
			return
		}

		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		if err := flags.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", env, err))
		}
	})

	return merr
}

// ResolvePagerConfig builds the [pager.Config] for output written to out.
// Paging is disabled by noPager, or by a truthy NO_PAGER or
// HELM_LIST_CHARTS_NO_PAGER. The pager command comes from PAGER.
func ResolvePagerConfig(noPager bool, threshold int, out io.Writer) pager.Config {
	v := viper.New()
	must(v.BindEnv("pager", "PAGER"))
	must(v.BindEnv("no_pager", "NO_PAGER"))
	must(v.BindEnv("tool_no_pager", EnvPrefix+"_NO_PAGER"))

	config := pager.Config{
		Command:   pager.DefaultCommand,
		Threshold: threshold,
		Terminal:  isTerminal(out),
		Disabled: noPager ||
			pager.IsTruthy(v.GetString("no_pager")) ||
			pager.IsTruthy(v.GetString("tool_no_pager")),
	}

	if cmd := strings.TrimSpace(v.GetString("pager")); cmd != "" {
		config.Command = cmd
	}

	return config
}

// headerStyle returns the style for the table header, or nil when out should
// not receive escape sequences.
func headerStyle(out io.Writer, noColor bool) *lipgloss.Style {
	if noColor || termenv.EnvNoColor() || !isTerminal(out) {
		return nil
	}

	style := lipgloss.NewRenderer(out).NewStyle().Bold(true)

	return &style
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
