// Package chartindex models a Helm repository index document and implements
// the read-only operations the listing pipeline applies to it.
//
// [Parse] decodes and validates raw index bytes into an [IndexDocument].
// [Filter] derives a narrowed document from [FilterCriteria], and [Group]
// turns a document into [ChartGroup]s in display order: groups sorted by
// chart name, case-insensitively, and entries sorted newest version first.
// None of these functions mutate their input.
package chartindex
