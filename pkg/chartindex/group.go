package chartindex

import (
	"slices"
	"strings"
)

// Group returns the charts of doc in display order. Groups are ordered by
// name ignoring case, with a case-sensitive comparison breaking ties. Entries
// within a group are ordered by semantic version, newest first; entries with
// equal versions keep their index order. Charts without entries are omitted.
func Group(doc *IndexDocument) []ChartGroup {
	groups := make([]ChartGroup, 0, len(doc.Entries))

	for name, entries := range doc.Entries {
		if len(entries) == 0 {
			continue
		}

		sorted := slices.Clone(entries)
		slices.SortStableFunc(sorted, func(a, b ChartEntry) int {
			return b.Version.Compare(a.Version)
		})

		groups = append(groups, ChartGroup{Name: name, Entries: sorted})
	}

	slices.SortFunc(groups, func(a, b ChartGroup) int {
		if c := strings.Compare(fold(a.Name), fold(b.Name)); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return groups
}
