package chartindex

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"

	"github.com/macropower/helm-list-charts/pkg/listerrors"
)

var (
	ErrEmptyDocument  = errors.New("empty document")
	ErrMissingEntries = errors.New("missing entries mapping")
	ErrMissingName    = errors.New("missing name")
	ErrMissingVersion = errors.New("missing version")
	ErrInvalidVersion = errors.New("invalid version")
	ErrNameMismatch   = errors.New("name does not match chart key")
)

// ParseError describes a malformed index document. Chart is empty for
// document-level problems. It matches [listerrors.ErrParse] as well as the
// underlying cause.
type ParseError struct {
	Err   error
	Chart string
	Index int
}

func (e *ParseError) Error() string {
	if e.Chart == "" {
		return fmt.Sprintf("%v: %v", listerrors.ErrParse, e.Err)
	}

	return fmt.Sprintf("%v: entries[%q][%d]: %v", listerrors.ErrParse, e.Chart, e.Index, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{listerrors.ErrParse, e.Err}
}

type rawIndex struct {
	Entries    map[string][]rawEntry `json:"entries"`
	APIVersion string                `json:"apiVersion"`
	Generated  string                `json:"generated"`
}

type rawEntry struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	AppVersion  string   `json:"appVersion"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Created     string   `json:"created"`
	KubeVersion string   `json:"kubeVersion"`
	URLs        []string `json:"urls"`
	Deprecated  bool     `json:"deprecated"`
}

type parseOpts struct {
	logger *slog.Logger
	strict bool
}

type ParseOpt func(*parseOpts)

// WithStrict makes entries with an invalid version, or a name that does not
// match their chart key, fail the whole parse instead of being skipped.
func WithStrict(strict bool) ParseOpt {
	return func(o *parseOpts) {
		o.strict = strict
	}
}

// WithLogger sets the logger used to report skipped entries. Defaults to
// [slog.Default].
func WithLogger(logger *slog.Logger) ParseOpt {
	return func(o *parseOpts) {
		o.logger = logger
	}
}

// Parse decodes an index document. Documents without an entries mapping, and
// entries without a name or version, are rejected with a [*ParseError].
// Entries whose version is not a valid semantic version are skipped with a
// warning unless [WithStrict] is set.
func Parse(data []byte, opts ...ParseOpt) (*IndexDocument, error) {
	o := &parseOpts{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Err: ErrEmptyDocument}
	}

	raw := &rawIndex{}

	err := yaml.Unmarshal(data, raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	if raw.Entries == nil {
		return nil, &ParseError{Err: ErrMissingEntries}
	}

	doc := &IndexDocument{
		APIVersion: raw.APIVersion,
		Generated:  raw.Generated,
		Entries:    make(map[string][]ChartEntry, len(raw.Entries)),
	}

	var merr error

	for _, chart := range slices.Sorted(maps.Keys(raw.Entries)) {
		rawEntries := raw.Entries[chart]
		entries := make([]ChartEntry, 0, len(rawEntries))

		for i, re := range rawEntries {
			if re.Name == "" {
				return nil, &ParseError{Chart: chart, Index: i, Err: ErrMissingName}
			}

			if re.Version == "" {
				return nil, &ParseError{Chart: chart, Index: i, Err: ErrMissingVersion}
			}

			entry, err := newChartEntry(chart, &re, o.logger)
			if err != nil {
				if o.strict {
					merr = multierror.Append(merr, &ParseError{Chart: chart, Index: i, Err: err})

					continue
				}

				o.logger.Warn("skipping invalid index entry",
					slog.String("chart", chart),
					slog.Int("index", i),
					slog.String("version", re.Version),
					slog.Any("err", err),
				)

				continue
			}

			entries = append(entries, entry)
		}

		doc.Entries[chart] = entries
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", listerrors.ErrParse, merr)
	}

	o.logger.Debug("parsed index",
		slog.String("api_version", doc.APIVersion),
		slog.Int("charts", len(doc.Entries)),
		slog.Int("versions", doc.Len()),
	)

	return doc, nil
}

func newChartEntry(chart string, re *rawEntry, logger *slog.Logger) (ChartEntry, error) {
	v, err := semver.NewVersion(re.Version)
	if err != nil {
		return ChartEntry{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, re.Version, err)
	}

	if re.Name != chart {
		return ChartEntry{}, fmt.Errorf("%w: %q", ErrNameMismatch, re.Name)
	}

	entry := ChartEntry{
		Name:        re.Name,
		Version:     v,
		AppVersion:  re.AppVersion,
		Description: re.Description,
		Type:        re.Type,
		KubeVersion: re.KubeVersion,
		URLs:        slices.Clone(re.URLs),
		Deprecated:  re.Deprecated,
	}

	if re.Created != "" {
		created, err := time.Parse(time.RFC3339, re.Created)
		if err != nil {
			logger.Warn("ignoring invalid created timestamp",
				slog.String("chart", chart),
				slog.String("version", re.Version),
				slog.String("created", re.Created),
			)
		} else {
			entry.Created = created
		}
	}

	return entry, nil
}
