package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/macropower/helm-list-charts/pkg/chartindex"
	"github.com/macropower/helm-list-charts/pkg/charttable"
	"github.com/macropower/helm-list-charts/pkg/helmrepo"
	"github.com/macropower/helm-list-charts/pkg/listerrors"
	"github.com/macropower/helm-list-charts/pkg/log"
	"github.com/macropower/helm-list-charts/pkg/pager"
)

const rootExample = `  # List every chart in a repository
  helm-list-charts --source https://bitnami-labs.github.io/sealed-secrets

  # List the versions of one chart
  helm-list-charts --source https://charts.example.com --chart podinfo

  # List library charts whose name contains "common", as JSON
  helm-list-charts --source https://charts.example.com --chart common --match substring --type library -o json

  # List versions that support Kubernetes 1.29
  helm-list-charts --source https://charts.example.com --kube-version 1.29.0
`

var (
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrEnvFailed        = errors.New("read environment")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		Example:       rootExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.PersistentFlags().StringVar(args.logLevel, "log-level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log-format", "text", "Set the log format (text, logfmt, json)")

	cmd.Flags().StringVar(args.source, "source", "", "Chart repository URL (required); index.yaml is appended")
	cmd.Flags().StringVar(args.chart, "chart", "", "Only list versions of this chart")
	cmd.Flags().StringVar(args.chartType, "type", "", "Only list charts of this type (application, library)")
	cmd.Flags().StringVar(args.match, "match", string(chartindex.MatchExact),
		"How --chart is compared to chart names (exact, substring)")
	cmd.Flags().StringVar(args.kubeVersion, "kube-version", "",
		"Only list versions whose kubeVersion constraint admits this Kubernetes version")
	cmd.Flags().StringVarP(args.output, "output", "o", string(charttable.FormatTable),
		"Output format (table, yaml, json)")
	cmd.Flags().BoolVar(args.strict, "strict", false, "Fail on invalid index entries instead of skipping them")
	cmd.Flags().DurationVar(args.timeout, "timeout", helmrepo.DefaultTimeout, "Timeout for fetching the index")
	cmd.Flags().StringVar(args.maxIndexSize, "max-index-size", helmrepo.DefaultMaxIndexSize.String(),
		"Reject index documents larger than this (checked after download)")
	cmd.Flags().BoolVar(args.noPager, "no-pager", false, "Never pipe output through $PAGER")
	cmd.Flags().IntVar(args.pagerThreshold, "pager-threshold", pager.DefaultThreshold,
		"Page output longer than this many lines")
	cmd.Flags().BoolVar(args.noColor, "no-color", false, "Disable styled output")
	cmd.Flags().BoolP("version", "V", false, "Print version information and exit")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		if err := bindFlags(cc.Flags(), newEnv()); err != nil {
			return fmt.Errorf("%w: %w", ErrEnvFailed, err)
		}

		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go")

		return nil
	}

	cmd.RunE = func(cc *cobra.Command, _ []string) error {
		return runList(cc, args)
	}

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// listOptions holds the validated settings of a list run.
type listOptions struct {
	criteria     chartindex.FilterCriteria
	indexURL     string
	format       charttable.Format
	maxIndexSize resource.Quantity
	timeout      time.Duration
}

func (a *RootArgs) listOptions() (*listOptions, error) {
	var merr error

	opts := &listOptions{
		criteria: chartindex.FilterCriteria{
			ChartName:   strings.TrimSpace(a.GetChart()),
			ChartType:   strings.TrimSpace(a.GetChartType()),
			Match:       chartindex.MatchMode(a.GetMatch()),
			KubeVersion: strings.TrimSpace(a.GetKubeVersion()),
		},
		format:  charttable.Format(a.GetOutput()),
		timeout: a.GetTimeout(),
	}

	if strings.TrimSpace(a.GetSource()) == "" {
		merr = multierror.Append(merr, errors.New("--source is required"))
	} else {
		indexURL, err := helmrepo.ResolveIndexURL(a.GetSource())
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("--source: %w", err))
		}

		opts.indexURL = indexURL
	}

	if err := opts.criteria.Validate(); err != nil {
		merr = multierror.Append(merr, err)
	}

	if !slices.Contains(charttable.Formats, opts.format) {
		merr = multierror.Append(merr, fmt.Errorf("--output: %w: %q", charttable.ErrUnknownFormat, opts.format))
	}

	size, err := resource.ParseQuantity(a.GetMaxIndexSize())
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("--max-index-size: %w", err))
	}

	opts.maxIndexSize = size

	if opts.timeout <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("--timeout: must be positive, got %s", opts.timeout))
	}

	if a.GetPagerThreshold() < 0 {
		merr = multierror.Append(merr, fmt.Errorf("--pager-threshold: must not be negative, got %d", a.GetPagerThreshold()))
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", listerrors.ErrInvalidArguments, merr)
	}

	return opts, nil
}

func runList(cc *cobra.Command, args *RootArgs) error {
	ctx := cc.Context()

	opts, err := args.listOptions()
	if err != nil {
		return err
	}

	fetcher := helmrepo.NewFetcher(
		helmrepo.WithTimeout(opts.timeout),
		helmrepo.WithMaxIndexSize(opts.maxIndexSize),
	)

	data, err := fetcher.Fetch(ctx, opts.indexURL)
	if err != nil {
		return err
	}

	doc, err := chartindex.Parse(data, chartindex.WithStrict(args.GetStrict()))
	if err != nil {
		return err
	}

	groups := chartindex.Group(chartindex.Filter(doc, opts.criteria))
	if len(groups) == 0 {
		slog.WarnContext(ctx, "no charts matched",
			slog.String("url", opts.indexURL),
			slog.String("chart", opts.criteria.ChartName),
			slog.String("type", opts.criteria.ChartType),
			slog.String("kube_version", opts.criteria.KubeVersion),
		)
	}

	out := cc.OutOrStdout()

	rendererOpts := []charttable.RendererOpt{charttable.WithFormat(opts.format)}
	if style := headerStyle(out, args.GetNoColor()); style != nil {
		rendererOpts = append(rendererOpts, charttable.WithHeaderStyle(*style))
	}

	table, err := charttable.NewRenderer(rendererOpts...).Render(groups)
	if err != nil {
		return err
	}

	config := ResolvePagerConfig(args.GetNoPager(), args.GetPagerThreshold(), out)
	slog.DebugContext(ctx, "writing output",
		slog.Int("lines", table.Lines()),
		slog.Bool("page", config.ShouldPage(table.Lines())),
		slog.String("pager", config.Command),
	)

	if err := pager.NewSink(config, out).Write(ctx, table); err != nil {
		return fmt.Errorf("%w: %w", listerrors.ErrOutput, err)
	}

	return nil
}
