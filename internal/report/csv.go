// server/internal/report/csv.go
package report

import (
	"encoding/csv"
	"io"
)

// utf8BOM makes Excel detect the encoding so Arabic columns render.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV renders the projected rows as UTF-8 CSV with a BOM prefix.
func WriteCSV(w io.Writer, columns []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
