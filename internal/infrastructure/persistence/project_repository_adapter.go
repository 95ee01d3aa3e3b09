package persistence

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type ProjectRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProjectRepositoryAdapter(db *sqlx.DB) *ProjectRepositoryAdapter {
	return &ProjectRepositoryAdapter{db: db}
}

// CreateWithAward пишет проект и переводит заявку в awarded одной транзакцией.
func (r *ProjectRepositoryAdapter) CreateWithAward(ctx context.Context, project *entity.Project) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось открыть транзакцию")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO projects (id, rfq_id, quote_id, vendor_id, creator_id, start_date, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err = tx.ExecContext(ctx, query,
		project.ID, project.RFQID, project.QuoteID, project.VendorID, project.CreatorID,
		project.StartDate, project.Notes, project.Status, project.CreatedAt, project.UpdatedAt,
	); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать проект")
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE rfqs SET status = $2, updated_at = NOW() WHERE id = $1`,
		project.RFQID, string(valueobject.RFQStatusAwarded),
	); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус заявки")
	}

	if err = tx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось зафиксировать транзакцию")
	}
	return nil
}
