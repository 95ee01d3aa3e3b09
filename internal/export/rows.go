package export

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
)

// ErrNoQuotes возвращается при попытке экспортировать пустой набор котировок.
var ErrNoQuotes = errors.New("нет котировок для экспорта")

// Колонки отчёта. Порядок фиксирован контрактом артефакта.
var columns = []string{"Vendor", "Rating", "Price (KSh)", "Timeline", "Status", "Submitted"}

// Row — одна строка отчёта, общая для CSV и PDF.
type Row struct {
	Vendor    string
	Rating    string
	Price     string
	Timeline  string
	Status    string
	Submitted string
}

func (r Row) fields() []string {
	return []string{r.Vendor, r.Rating, r.Price, r.Timeline, r.Status, r.Submitted}
}

// BuildRows превращает котировки и карточки поставщиков в строки отчёта.
// Чистая проекция уже загруженных данных: без повторных запросов к БД,
// экспорт может отставать от конкурентных изменений на сервере.
func BuildRows(quotes []models.Quote, vendors map[uuid.UUID]models.VendorProfile) []Row {
	rows := make([]Row, 0, len(quotes))
	for _, q := range quotes {
		vendorName := "Unknown Vendor"
		rating := "N/A"
		if v, ok := vendors[q.VendorID]; ok {
			vendorName = v.DisplayName
			if v.Rating != nil {
				rating = strconv.FormatFloat(*v.Rating, 'f', 1, 64)
			}
		}

		rows = append(rows, Row{
			Vendor: vendorName,
			Rating: rating,
			// Сумма выводится без разделителей тысяч.
			Price:     strconv.FormatFloat(q.Amount, 'f', -1, 64),
			Timeline:  q.Timeline,
			Status:    q.Status,
			Submitted: q.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

// Filename строит имя файла отчёта: quotes-<префикс id>.<ext>.
func Filename(rfqID uuid.UUID, ext string) string {
	return fmt.Sprintf("quotes-%s.%s", rfqID.String()[:8], ext)
}
