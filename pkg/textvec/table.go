package textvec

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// Table is a dense, labelled view of a representation: one Index label
// per row, one Columns label per column. Building a Table stores every
// zero, so exports are guarded by an entry budget.
type Table struct {
	Index   []string
	Columns []string
	Values  [][]float64
}

// denseTable densifies a submatrix after checking it against the entry
// budget. A budget of zero or less disables the guard.
func denseTable(index []string, columns []string, sub *sparse.Matrix, maxEntries int) (*Table, error) {
	entries := sub.Rows() * sub.Cols()
	if maxEntries > 0 && entries > maxEntries {
		return nil, &CapacityError{Entries: entries, MaxEntries: maxEntries}
	}
	return &Table{Index: index, Columns: columns, Values: sub.Dense()}, nil
}

// WriteCSV writes the table with a header row of column labels and the
// row label as first field.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range t.Values {
		record := make([]string, 0, len(row)+1)
		record = append(record, t.Index[i])
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
