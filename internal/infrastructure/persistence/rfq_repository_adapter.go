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

type RFQRepositoryAdapter struct {
	db *sqlx.DB
}

func NewRFQRepositoryAdapter(db *sqlx.DB) *RFQRepositoryAdapter {
	return &RFQRepositoryAdapter{db: db}
}

func (r *RFQRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.RFQ, error) {
	var row rfqRow
	query := `
		SELECT id, creator_id, title, description, category, visibility, status,
		budget_hint, deadline_at, created_at, updated_at
		FROM rfqs WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявку")
	}
	return row.toEntity()
}

func (r *RFQRepositoryAdapter) Update(ctx context.Context, rfq *entity.RFQ) error {
	query := `
		UPDATE rfqs SET title = $2, description = $3, category = $4, visibility = $5,
		status = $6, budget_hint = $7, deadline_at = $8, updated_at = $9
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		rfq.ID, rfq.Title, rfq.Description, rfq.Category, string(rfq.Visibility),
		string(rfq.Status), rfq.BudgetHint, rfq.DeadlineAt, rfq.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}
	return nil
}

type rfqRow struct {
	ID          uuid.UUID  `db:"id"`
	CreatorID   uuid.UUID  `db:"creator_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Category    *string    `db:"category"`
	Visibility  string     `db:"visibility"`
	Status      string     `db:"status"`
	BudgetHint  *float64   `db:"budget_hint"`
	DeadlineAt  *time.Time `db:"deadline_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r *rfqRow) toEntity() (*entity.RFQ, error) {
	status, err := valueobject.NewRFQStatus(r.Status)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "некорректный статус заявки в базе")
	}
	visibility, err := valueobject.NewRFQVisibility(r.Visibility)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "некорректная видимость заявки в базе")
	}
	return &entity.RFQ{
		ID:          r.ID,
		CreatorID:   r.CreatorID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Visibility:  visibility,
		Status:      status,
		BudgetHint:  r.BudgetHint,
		DeadlineAt:  r.DeadlineAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
