package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrQuoteDuplicate = errors.New("quote already submitted")
)

// QuoteRepository отвечает за котировки и карточки поставщиков.
type QuoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository создаёт новый экземпляр.
func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create сохраняет котировку. На пару (rfq, vendor) допускается один отклик.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	query := `
		INSERT INTO quotes (rfq_id, vendor_id, amount, currency, timeline, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		quote.RFQID, quote.VendorID, quote.Amount, quote.Currency,
		quote.Timeline, quote.Message, quote.Status,
	).Scan(&quote.ID, &quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrQuoteDuplicate
		}
		return fmt.Errorf("quote repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает котировку по идентификатору.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return common.GetByID[models.Quote](ctx, r.db, "quotes", id, ErrQuoteNotFound)
}

// ListByRFQ возвращает все котировки заявки, новые первыми.
func (r *QuoteRepository) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error) {
	var quotes []models.Quote
	query := `SELECT * FROM quotes WHERE rfq_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &quotes, query, rfqID); err != nil {
		return nil, fmt.Errorf("quote repository: list by rfq %w", err)
	}
	return quotes, nil
}

// ListByRFQAndVendor возвращает котировки заявки, принадлежащие поставщику.
// Используется для не-авторов: они видят только собственные отклики.
func (r *QuoteRepository) ListByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]models.Quote, error) {
	var quotes []models.Quote
	query := `SELECT * FROM quotes WHERE rfq_id = $1 AND vendor_id = $2 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &quotes, query, rfqID, vendorID); err != nil {
		return nil, fmt.Errorf("quote repository: list by rfq and vendor %w", err)
	}
	return quotes, nil
}

// ListByVendor возвращает все котировки поставщика.
func (r *QuoteRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]models.Quote, error) {
	var quotes []models.Quote
	query := `SELECT * FROM quotes WHERE vendor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &quotes, query, vendorID, limit, offset); err != nil {
		return nil, fmt.Errorf("quote repository: list by vendor %w", err)
	}
	return quotes, nil
}

// UpdateStatus переводит котировку в новый статус. Никаких блокировок:
// при конкурентных обновлениях побеждает последняя запись.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("quote repository: update status %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

// Update сохраняет правку котировки поставщиком (пока она в статусе submitted).
func (r *QuoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	query := `
		UPDATE quotes
		SET amount = $2, currency = $3, timeline = $4, message = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		quote.ID, quote.Amount, quote.Currency, quote.Timeline, quote.Message,
	).Scan(&quote.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("quote repository: update %w", err)
	}
	return nil
}

// GetVendorProfiles выполняет один batch-запрос карточек поставщиков
// по множеству идентификаторов из загруженных котировок.
func (r *QuoteRepository) GetVendorProfiles(ctx context.Context, vendorIDs []uuid.UUID) ([]models.VendorProfile, error) {
	if len(vendorIDs) == 0 {
		return nil, nil
	}

	var profiles []models.VendorProfile
	query := `SELECT * FROM vendor_profiles WHERE user_id = ANY($1)`
	if err := r.db.SelectContext(ctx, &profiles, query, pq.Array(vendorIDs)); err != nil {
		return nil, fmt.Errorf("quote repository: batch vendor profiles %w", err)
	}
	return profiles, nil
}

// GetVendorStats возвращает счётчики котировок поставщика по статусам.
func (r *QuoteRepository) GetVendorStats(ctx context.Context, vendorID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'submitted') AS submitted,
			COUNT(*) FILTER (WHERE status = 'accepted') AS accepted,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM quotes
		WHERE vendor_id = $1
	`

	var row struct {
		Total     int `db:"total"`
		Submitted int `db:"submitted"`
		Accepted  int `db:"accepted"`
		Rejected  int `db:"rejected"`
	}
	if err := r.db.GetContext(ctx, &row, query, vendorID); err != nil {
		return nil, fmt.Errorf("quote repository: vendor stats %w", err)
	}

	return map[string]int{
		"total":     row.Total,
		"submitted": row.Submitted,
		"accepted":  row.Accepted,
		"rejected":  row.Rejected,
	}, nil
}
