package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/repository/common"
)

// ErrProjectNotFound возвращается, если проект не найден.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository отвечает за проекты, созданные по назначенным котировкам.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт новый экземпляр.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithAward сохраняет проект и переводит заявку в статус awarded
// в одной транзакции.
func (r *ProjectRepository) CreateWithAward(ctx context.Context, project *models.Project) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("project repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO projects (rfq_id, quote_id, vendor_id, creator_id, start_date, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	if err = tx.QueryRowxContext(ctx, query,
		project.RFQID, project.QuoteID, project.VendorID, project.CreatorID,
		project.StartDate, project.Notes, project.Status,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return fmt.Errorf("project repository: insert project %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE rfqs SET status = $2, updated_at = NOW() WHERE id = $1`,
		project.RFQID, models.RFQStatusAwarded,
	); err != nil {
		return fmt.Errorf("project repository: award rfq %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("project repository: commit %w", err)
	}
	return nil
}

// GetByID возвращает проект по идентификатору.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return common.GetByID[models.Project](ctx, r.db, "projects", id, ErrProjectNotFound)
}

// ListByUser возвращает проекты, где пользователь — автор заявки или исполнитель.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Project, error) {
	var projects []models.Project
	query := `
		SELECT * FROM projects
		WHERE creator_id = $1 OR vendor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &projects, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("project repository: list by user %w", err)
	}
	return projects, nil
}
