// server/internal/report/pdf.go
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF renders the projected rows as a landscape A4 table. The page is
// laid out right-to-left: the first column sits at the right edge.
// fontPath points at a UTF-8 TTF font for Arabic text; when empty the
// built-in Helvetica is used, which only renders the Latin fallback.
func RenderPDF(title string, columns []string, rows [][]string, fontPath string) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to render")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)

	fontName := "Helvetica"
	if fontPath != "" {
		fontName = "report"
		pdf.AddUTF8Font(fontName, "", fontPath)
	}
	if pdf.Err() {
		return nil, pdf.Error()
	}
	pdf.SetRightMargin(10)
	pdf.SetLeftMargin(10)
	pdf.AddPage()

	pdf.SetFont(fontName, "", 16)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 9)
	pdf.CellFormat(0, 6, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageW, _ := pdf.GetPageSize()
	colW := (pageW - 20) / float64(len(columns))

	writeRow := func(cells []string, fill bool) {
		// RTL: reverse the projection order so the first column is rightmost.
		for i := len(cells) - 1; i >= 0; i-- {
			pdf.CellFormat(colW, 8, cells[i], "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont(fontName, "", 10)
	writeRow(columns, true)

	pdf.SetFont(fontName, "", 9)
	for _, row := range rows {
		writeRow(row, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
