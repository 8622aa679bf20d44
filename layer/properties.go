package layer

import (
	"github.com/robert-malhotra/go-omezarr/omezarr"
)

// PropertyTable is a per-object property table pivoted into columns.
// Index holds the object ids in their original row order; each field in
// Fields (union of all field names, first-seen order) has a column in
// Columns aligned positionally with Index. An object lacking a field
// holds nil at its position.
type PropertyTable struct {
	Index   []int64
	Fields  []string
	Columns map[string][]interface{}
}

// pivotProperties turns row-major property rows (one per object) into
// the column-major table the host expects.
func pivotProperties(rows []omezarr.PropertyRow) *PropertyTable {
	table := &PropertyTable{
		Index:   make([]int64, 0, len(rows)),
		Columns: map[string][]interface{}{},
	}

	// First pass: the union of field names across all rows.
	for _, row := range rows {
		for _, field := range row.Fields {
			if _, seen := table.Columns[field.Name]; !seen {
				table.Columns[field.Name] = nil
				table.Fields = append(table.Fields, field.Name)
			}
		}
	}

	// Second pass: aligned columns, nil where a row lacks a field.
	for _, row := range rows {
		table.Index = append(table.Index, row.Label)

		values := map[string]interface{}{}
		for _, field := range row.Fields {
			values[field.Name] = field.Value
		}
		for _, name := range table.Fields {
			table.Columns[name] = append(table.Columns[name], values[name])
		}
	}

	return table
}
