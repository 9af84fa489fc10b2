package chartindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"

	"github.com/macropower/helm-list-charts/pkg/listerrors"
)

// MatchMode controls how [FilterCriteria.ChartName] is compared to chart
// names. Both modes ignore case.
type MatchMode string

const (
	MatchExact     MatchMode = "exact"
	MatchSubstring MatchMode = "substring"
)

var (
	ErrInvalidMatchMode   = errors.New("invalid match mode")
	ErrInvalidKubeVersion = errors.New("invalid kubernetes version")
)

// FilterCriteria selects index entries. Empty fields match everything, and
// all non-empty fields must match.
type FilterCriteria struct {
	// ChartName is compared against chart names according to Match.
	ChartName string
	// ChartType must equal the entry type, ignoring case. Entries without a
	// type never match a non-empty ChartType.
	ChartType string
	// Match defaults to [MatchExact].
	Match MatchMode
	// KubeVersion keeps entries whose kubeVersion constraint admits this
	// Kubernetes version. Entries without a constraint always match.
	KubeVersion string
}

// Validate reports criteria that [Filter] cannot apply.
func (c FilterCriteria) Validate() error {
	switch c.Match {
	case "", MatchExact, MatchSubstring:
	default:
		return fmt.Errorf("%w: %w: %q", listerrors.ErrInvalidArguments, ErrInvalidMatchMode, c.Match)
	}

	if c.KubeVersion != "" {
		if _, err := semver.NewVersion(c.KubeVersion); err != nil {
			return fmt.Errorf("%w: %w: %q: %w", listerrors.ErrInvalidArguments, ErrInvalidKubeVersion, c.KubeVersion, err)
		}
	}

	return nil
}

// Filter returns a new document holding the entries of doc that match c.
// Charts left without entries are omitted. Criteria that fail
// [FilterCriteria.Validate] match nothing.
func Filter(doc *IndexDocument, c FilterCriteria) *IndexDocument {
	out := &IndexDocument{
		APIVersion: doc.APIVersion,
		Generated:  doc.Generated,
		Entries:    make(map[string][]ChartEntry),
	}

	m, err := newMatcher(c)
	if err != nil {
		return out
	}

	for name, entries := range doc.Entries {
		if !m.matchName(name) {
			continue
		}

		var kept []ChartEntry

		for _, e := range entries {
			if m.matchEntry(&e) {
				kept = append(kept, e)
			}
		}

		if len(kept) > 0 {
			out.Entries[name] = kept
		}
	}

	return out
}

type matcher struct {
	kubeVersion *semver.Version
	name        string
	chartType   string
	substring   bool
}

func newMatcher(c FilterCriteria) (*matcher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := &matcher{
		name:      fold(c.ChartName),
		chartType: fold(c.ChartType),
		substring: c.Match == MatchSubstring,
	}

	if c.KubeVersion != "" {
		kv, err := semver.NewVersion(c.KubeVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKubeVersion, err)
		}

		m.kubeVersion = kv
	}

	return m, nil
}

func (m *matcher) matchName(name string) bool {
	if m.name == "" {
		return true
	}

	if m.substring {
		return strings.Contains(fold(name), m.name)
	}

	return fold(name) == m.name
}

func (m *matcher) matchEntry(e *ChartEntry) bool {
	if m.chartType != "" && fold(e.Type) != m.chartType {
		return false
	}

	if m.kubeVersion != nil && e.KubeVersion != "" {
		constraint, err := semver.NewConstraint(e.KubeVersion)
		if err != nil {
			return false
		}

		return constraint.Check(m.kubeVersion)
	}

	return true
}

// fold returns the Unicode case folding of s, for case-insensitive
// comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}
