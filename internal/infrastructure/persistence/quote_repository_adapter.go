package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type QuoteRepositoryAdapter struct {
	db *sqlx.DB
}

func NewQuoteRepositoryAdapter(db *sqlx.DB) *QuoteRepositoryAdapter {
	return &QuoteRepositoryAdapter{db: db}
}

func (r *QuoteRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var row quoteRow
	query := `
		SELECT id, rfq_id, vendor_id, amount, currency, timeline, message, status, created_at, updated_at
		FROM quotes WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrQuoteNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить котировку")
	}
	return row.toEntity()
}

func (r *QuoteRepositoryAdapter) FindByRFQID(ctx context.Context, rfqID uuid.UUID) ([]*entity.Quote, error) {
	var rows []quoteRow
	query := `
		SELECT id, rfq_id, vendor_id, amount, currency, timeline, message, status, created_at, updated_at
		FROM quotes WHERE rfq_id = $1 ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, rfqID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить котировки")
	}
	return toQuoteEntities(rows)
}

func (r *QuoteRepositoryAdapter) FindByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]*entity.Quote, error) {
	var rows []quoteRow
	query := `
		SELECT id, rfq_id, vendor_id, amount, currency, timeline, message, status, created_at, updated_at
		FROM quotes WHERE rfq_id = $1 AND vendor_id = $2 ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, rfqID, vendorID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить котировки")
	}
	return toQuoteEntities(rows)
}

func (r *QuoteRepositoryAdapter) Update(ctx context.Context, quote *entity.Quote) error {
	query := `
		UPDATE quotes SET amount = $2, currency = $3, timeline = $4, message = $5,
		status = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		quote.ID, quote.Price.Amount, quote.Price.Currency, quote.Timeline,
		quote.Message, string(quote.Status), quote.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить котировку")
	}
	return nil
}

type quoteRow struct {
	ID        uuid.UUID `db:"id"`
	RFQID     uuid.UUID `db:"rfq_id"`
	VendorID  uuid.UUID `db:"vendor_id"`
	Amount    float64   `db:"amount"`
	Currency  string    `db:"currency"`
	Timeline  string    `db:"timeline"`
	Message   *string   `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (q *quoteRow) toEntity() (*entity.Quote, error) {
	status, err := valueobject.NewQuoteStatus(q.Status)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "некорректный статус котировки в базе")
	}
	return &entity.Quote{
		ID:        q.ID,
		RFQID:     q.RFQID,
		VendorID:  q.VendorID,
		Price:     valueobject.Money{Amount: q.Amount, Currency: q.Currency},
		Timeline:  q.Timeline,
		Message:   q.Message,
		Status:    status,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}, nil
}

func toQuoteEntities(rows []quoteRow) ([]*entity.Quote, error) {
	result := make([]*entity.Quote, len(rows))
	for i, row := range rows {
		quote, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		result[i] = quote
	}
	return result, nil
}
