// Package reference loads the immutable thread, washer and head-type tables.
//
// Tables are embedded YAML documents decoded once and normalized into
// model.ThreadStandard values. Malformed rows fail the load with
// common.ErrInvalidReference so matching never sees a broken table.
package reference

import (
	"embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Table is the read-only reference data store.
type Table struct {
	headTypes map[model.HeadType]model.HeadTypeInfo
	index     map[model.System]map[string]int
	standards map[model.System][]model.ThreadStandard
	washers   map[model.System][]model.Washer
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load()
})

// Default returns the embedded table, loading it on first use.
func Default() (*Table, error) {
	return defaultTable()
}

// Load decodes the embedded tables.
func Load() (*Table, error) {
	metricData, err := tablesFS.ReadFile("tables/metric.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read metric table: %w", err)
	}
	whitworthData, err := tablesFS.ReadFile("tables/whitworth.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read whitworth table: %w", err)
	}
	headTypeData, err := tablesFS.ReadFile("tables/head_types.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read head type table: %w", err)
	}

	table, err := Parse(metricData, whitworthData, headTypeData)
	if err != nil {
		return nil, err
	}

	common.LogDebug("Reference tables loaded", common.Fields{
		"metric":     len(table.standards[model.SystemMetric]),
		"whitworth":  len(table.standards[model.SystemWhitworth]),
		"head_types": len(table.headTypes),
	})

	return table, nil
}

// Parse builds a Table from raw YAML documents.
func Parse(metricYAML, whitworthYAML, headTypesYAML []byte) (*Table, error) {
	metric, metricWashers, err := parseMetric(metricYAML)
	if err != nil {
		return nil, err
	}
	whitworth, whitworthWashers, err := parseWhitworth(whitworthYAML)
	if err != nil {
		return nil, err
	}
	heads, err := parseHeadTypes(headTypesYAML)
	if err != nil {
		return nil, err
	}

	return New(append(metric, whitworth...), append(metricWashers, whitworthWashers...), heads)
}

// New builds a Table from already-normalized rows. Rows are validated and
// ordered by nominal diameter, then designation.
func New(standards []model.ThreadStandard, washers []model.Washer, heads []model.HeadTypeInfo) (*Table, error) {
	t := &Table{
		headTypes: make(map[model.HeadType]model.HeadTypeInfo, len(heads)),
		index:     make(map[model.System]map[string]int),
		standards: make(map[model.System][]model.ThreadStandard),
		washers:   make(map[model.System][]model.Washer),
	}

	for _, std := range standards {
		if err := std.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidReference, err)
		}
		t.standards[std.System] = append(t.standards[std.System], std)
	}

	for system, rows := range t.standards {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].NominalDiameterMm != rows[j].NominalDiameterMm {
				return rows[i].NominalDiameterMm < rows[j].NominalDiameterMm
			}
			return rows[i].Designation < rows[j].Designation
		})

		idx := make(map[string]int, len(rows))
		for i, row := range rows {
			if _, dup := idx[row.Designation]; dup {
				return nil, fmt.Errorf("%w: duplicate designation %q in %s table",
					common.ErrInvalidReference, row.Designation, system)
			}
			idx[row.Designation] = i
		}
		t.index[system] = idx
	}

	for _, w := range washers {
		if w.InnerDiameterMm <= 0 || w.OuterDiameterMm <= w.InnerDiameterMm {
			return nil, fmt.Errorf("%w: washer %s has inconsistent diameters", common.ErrInvalidReference, w.Designation)
		}
		t.washers[w.System] = append(t.washers[w.System], w)
	}
	for _, rows := range t.washers {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].InnerDiameterMm < rows[j].InnerDiameterMm
		})
	}

	for _, h := range heads {
		t.headTypes[h.Type] = h
	}

	return t, nil
}

// Standards returns the rows of one system ordered by nominal diameter.
// The returned slice is a copy; the rows themselves must not be modified.
func (t *Table) Standards(system model.System) []model.ThreadStandard {
	return slices.Clone(t.standards[system])
}

// Lookup returns the row for a designation within a system.
func (t *Table) Lookup(system model.System, designation string) (model.ThreadStandard, error) {
	idx, ok := t.index[system][designation]
	if !ok {
		return model.ThreadStandard{}, fmt.Errorf("%s designation %q: %w", system, designation, common.ErrNotFound)
	}
	return t.standards[system][idx], nil
}

// Find looks a designation up in the metric table first, then Whitworth.
func (t *Table) Find(designation string) (model.ThreadStandard, error) {
	for _, system := range []model.System{model.SystemMetric, model.SystemWhitworth} {
		if std, err := t.Lookup(system, designation); err == nil {
			return std, nil
		}
	}
	return model.ThreadStandard{}, fmt.Errorf("designation %q: %w", designation, common.ErrNotFound)
}

// Designations lists the designations of one system in table order.
func (t *Table) Designations(system model.System) []string {
	rows := t.standards[system]
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Designation)
	}
	return out
}

// Washers returns the washers of one system ordered by inner diameter.
func (t *Table) Washers(system model.System) []model.Washer {
	return slices.Clone(t.washers[system])
}

// HeadType returns display information for a head type.
func (t *Table) HeadType(head model.HeadType) (model.HeadTypeInfo, bool) {
	info, ok := t.headTypes[head]
	return info, ok
}

// HeadTypes returns all known head types sorted by tag.
func (t *Table) HeadTypes() []model.HeadTypeInfo {
	out := make([]model.HeadTypeInfo, 0, len(t.headTypes))
	for _, info := range t.headTypes {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
