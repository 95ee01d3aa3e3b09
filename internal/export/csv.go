package export

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
)

// CSV строит CSV отчёт по котировкам: строка заголовка плюс строка на
// каждую котировку. Каждое поле заключается в кавычки безусловно —
// encoding/csv такого режима не даёт, поэтому запись собирается вручную.
func CSV(quotes []models.Quote, vendors map[uuid.UUID]models.VendorProfile) ([]byte, error) {
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}

	var b strings.Builder
	writeCSVLine(&b, columns)

	for _, row := range BuildRows(quotes, vendors) {
		b.WriteByte('\n')
		writeCSVLine(&b, row.fields())
	}

	return []byte(b.String()), nil
}

// writeCSVLine пишет строку, заключая каждое поле в кавычки.
// Внутренние кавычки удваиваются по правилам RFC 4180.
func writeCSVLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}
