package charttable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/macropower/helm-list-charts/pkg/chartindex"
	"github.com/macropower/helm-list-charts/pkg/listerrors"
)

const (
	// Placeholder is shown in place of missing optional fields.
	Placeholder = "<unspecified>"

	// TimeFormat is the layout used for the CREATED column.
	TimeFormat = "Jan 2, 2006 3:04 pm"

	columnSeparator = "   "
	deprecatedMark  = " (deprecated)"
)

type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatTable, FormatYAML, FormatJSON}

// Header holds the table column titles, in order.
var Header = []string{"CHART", "TYPE", "VERSION", "DESCRIPTION", "APP VERSION", "CREATED", "KUBE VERSION"}

var ErrUnknownFormat = errors.New("unknown output format")

// RenderedTable is the output of [Renderer.Render]. Header and Rows are only
// populated for [FormatTable].
type RenderedTable struct {
	Header []string
	Rows   [][]string
	Text   string
}

// String returns the rendered text. It always ends with a newline.
func (t *RenderedTable) String() string {
	return t.Text
}

// Lines returns the number of lines in the rendered text.
func (t *RenderedTable) Lines() int {
	return strings.Count(t.Text, "\n")
}

// Renderer formats chart groups. Create instances with [NewRenderer].
type Renderer struct {
	location    *time.Location
	headerStyle *lipgloss.Style
	format      Format
}

type RendererOpt func(*Renderer)

// WithFormat selects the output format. Defaults to [FormatTable].
func WithFormat(format Format) RendererOpt {
	return func(r *Renderer) {
		r.format = format
	}
}

// WithLocation sets the time zone of the CREATED column. Defaults to
// [time.Local].
func WithLocation(loc *time.Location) RendererOpt {
	return func(r *Renderer) {
		r.location = loc
	}
}

// WithHeaderStyle styles the header line of [FormatTable] output. The style
// is applied after alignment, so it may add escape sequences freely.
func WithHeaderStyle(style lipgloss.Style) RendererOpt {
	return func(r *Renderer) {
		r.headerStyle = &style
	}
}

// NewRenderer creates a new [Renderer].
func NewRenderer(opts ...RendererOpt) *Renderer {
	r := &Renderer{
		format:   FormatTable,
		location: time.Local,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render formats groups in the order given. An empty slice renders a
// header-only table, or an empty list for YAML and JSON.
func (r *Renderer) Render(groups []chartindex.ChartGroup) (*RenderedTable, error) {
	switch r.format {
	case FormatTable, "":
		return r.renderTable(groups), nil
	case FormatYAML:
		return r.renderYAML(groups)
	case FormatJSON:
		return r.renderJSON(groups)
	}

	return nil, fmt.Errorf("%w: %w: %q", listerrors.ErrRender, ErrUnknownFormat, r.format)
}

func (r *Renderer) renderTable(groups []chartindex.ChartGroup) *RenderedTable {
	t := &RenderedTable{Header: Header}

	tbl := uitable.New()
	tbl.Separator = columnSeparator
	tbl.AddRow(toCells(Header)...)

	for _, g := range groups {
		for _, e := range g.Entries {
			row := r.row(&e)
			t.Rows = append(t.Rows, row)
			tbl.AddRow(toCells(row)...)
		}
	}

	lines := strings.Split(tbl.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}

	if r.headerStyle != nil {
		lines[0] = r.headerStyle.Render(lines[0])
	}

	t.Text = strings.Join(lines, "\n") + "\n"

	return t
}

func (r *Renderer) row(e *chartindex.ChartEntry) []string {
	version := e.Version.Original()
	if e.Deprecated {
		version += deprecatedMark
	}

	created := Placeholder
	if !e.Created.IsZero() {
		created = e.Created.In(r.location).Format(TimeFormat)
	}

	return []string{
		e.Name,
		orPlaceholder(e.Type),
		version,
		orPlaceholder(singleLine(e.Description)),
		orPlaceholder(e.AppVersion),
		created,
		orPlaceholder(e.KubeVersion),
	}
}

type chartVersion struct {
	Created     *time.Time `json:"created,omitempty"     yaml:"created,omitempty"`
	Name        string     `json:"name"                  yaml:"name"`
	Version     string     `json:"version"               yaml:"version"`
	Type        string     `json:"type,omitempty"        yaml:"type,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	AppVersion  string     `json:"appVersion,omitempty"  yaml:"appVersion,omitempty"`
	KubeVersion string     `json:"kubeVersion,omitempty" yaml:"kubeVersion,omitempty"`
	URLs        []string   `json:"urls,omitempty"        yaml:"urls,omitempty"`
	Deprecated  bool       `json:"deprecated,omitempty"  yaml:"deprecated,omitempty"`
}

func (r *Renderer) versions(groups []chartindex.ChartGroup) []chartVersion {
	out := []chartVersion{}

	for _, g := range groups {
		for _, e := range g.Entries {
			cv := chartVersion{
				Name:        e.Name,
				Version:     e.Version.Original(),
				Type:        e.Type,
				Description: e.Description,
				AppVersion:  e.AppVersion,
				KubeVersion: e.KubeVersion,
				URLs:        e.URLs,
				Deprecated:  e.Deprecated,
			}

			if !e.Created.IsZero() {
				created := e.Created.In(r.location)
				cv.Created = &created
			}

			out = append(out, cv)
		}
	}

	return out
}

func (r *Renderer) renderYAML(groups []chartindex.ChartGroup) (*RenderedTable, error) {
	buf := &bytes.Buffer{}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	if err := enc.Encode(r.versions(groups)); err != nil {
		return nil, fmt.Errorf("%w: encode yaml: %w", listerrors.ErrRender, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: encode yaml: %w", listerrors.ErrRender, err)
	}

	return &RenderedTable{Text: buf.String()}, nil
}

func (r *Renderer) renderJSON(groups []chartindex.ChartGroup) (*RenderedTable, error) {
	data, err := json.MarshalIndent(r.versions(groups), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode json: %w", listerrors.ErrRender, err)
	}

	return &RenderedTable{Text: string(data) + "\n"}, nil
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}

	return s
}

// singleLine collapses runs of whitespace, including newlines, so a cell
// never spans multiple lines.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toCells(row []string) []any {
	cells := make([]any, len(row))
	for i, c := range row {
		cells[i] = c
	}

	return cells
}
