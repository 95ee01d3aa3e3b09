package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/sokohub/rfq-backend/internal/models"
)

// Ширины колонок таблицы в мм (A4, портрет, поля по 10 мм).
var pdfColWidths = []float64{45, 18, 32, 40, 25, 30}

const (
	pdfRowHeight   = 8.0
	pdfBottomLimit = 275.0
)

// PDF строит PDF отчёт: титульный блок и таблица с теми же колонками,
// что и CSV, с переносом на новую страницу при переполнении.
// Любая ошибка рендеринга скрывается за общим сообщением, частичный
// документ не возвращается.
func PDF(rfq *models.RFQ, quotes []models.Quote, vendors map[uuid.UUID]models.VendorProfile) ([]byte, error) {
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Титульный блок: название отчёта, заявка, количество котировок, дата.
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Quote Comparison Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("RFQ: %s", rfq.Title), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Quotes: %d", len(quotes)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writePDFHeader(pdf)

	pdf.SetFont("Arial", "", 9)
	for _, row := range BuildRows(quotes, vendors) {
		if pdf.GetY()+pdfRowHeight > pdfBottomLimit {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Arial", "", 9)
		}
		for i, field := range row.fields() {
			pdf.CellFormat(pdfColWidths[i], pdfRowHeight, field, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: не удалось сформировать PDF отчёт: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range columns {
		pdf.CellFormat(pdfColWidths[i], pdfRowHeight, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}
