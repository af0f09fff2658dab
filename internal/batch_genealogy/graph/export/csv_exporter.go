package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/trace"
)

var bomHeader = []string{"level", "batch_id", "material_name", "quantity", "unit", "supplier", "consumer_id"}

// WriteBOMCSV writes the bill of materials as a table, one row per line.
func WriteBOMCSV(w io.Writer, bom *trace.BOM) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bomHeader); err != nil {
		return err
	}
	for _, l := range bom.Lines {
		row := []string{
			strconv.Itoa(l.Level),
			l.EntityID,
			l.MaterialName,
			strconv.FormatFloat(l.Quantity, 'f', -1, 64),
			l.Unit,
			l.Supplier,
			l.ConsumerID,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
