package chartindex

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// ChartEntry is a single chart version listed in an index document.
type ChartEntry struct {
	Created     time.Time
	Version     *semver.Version
	Name        string
	AppVersion  string
	Description string
	Type        string
	KubeVersion string
	URLs        []string
	Deprecated  bool
}

// IndexDocument is a parsed index document. Every entry in Entries has a Name
// equal to its map key.
type IndexDocument struct {
	Entries    map[string][]ChartEntry
	APIVersion string
	Generated  string
}

// Len returns the number of chart versions in the document.
func (d *IndexDocument) Len() int {
	n := 0
	for _, entries := range d.Entries {
		n += len(entries)
	}

	return n
}

// ChartGroup holds every listed version of one chart, newest first.
type ChartGroup struct {
	Name    string
	Entries []ChartEntry
}
