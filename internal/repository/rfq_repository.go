package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/models"
)

// Ошибки уровня репозитория.
var (
	ErrRFQNotFound = errors.New("rfq not found")
)

// RFQRepository отвечает за заявки на котировки и их вложения.
type RFQRepository struct {
	db *sqlx.DB
}

// NewRFQRepository создаёт новый экземпляр.
func NewRFQRepository(db *sqlx.DB) *RFQRepository {
	return &RFQRepository{db: db}
}

// GetByID возвращает заявку по идентификатору.
func (r *RFQRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	var rfq models.RFQ
	query := `
		SELECT id, creator_id, title, description, category, visibility, status,
		       budget_hint, deadline_at, created_at, updated_at
		FROM rfqs
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &rfq, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRFQNotFound
		}
		return nil, fmt.Errorf("rfq repository: get by id %w", err)
	}
	return &rfq, nil
}

// Create сохраняет заявку и вложения в одной транзакции.
func (r *RFQRepository) Create(ctx context.Context, rfq *models.RFQ, attachmentIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("rfq repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO rfqs (creator_id, title, description, category, visibility, status, budget_hint, deadline_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	if err = tx.QueryRowxContext(ctx, query,
		rfq.CreatorID, rfq.Title, rfq.Description, rfq.Category,
		rfq.Visibility, rfq.Status, rfq.BudgetHint, rfq.DeadlineAt,
	).Scan(&rfq.ID, &rfq.CreatedAt, &rfq.UpdatedAt); err != nil {
		return fmt.Errorf("rfq repository: insert rfq %w", err)
	}

	if len(attachmentIDs) > 0 {
		// Batch INSERT для вложений.
		attQuery := `INSERT INTO rfq_attachments (rfq_id, media_id) VALUES `
		attValues := make([]interface{}, 0, len(attachmentIDs)*2)

		for i, mediaID := range attachmentIDs {
			if i > 0 {
				attQuery += ", "
			}
			attQuery += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
			attValues = append(attValues, rfq.ID, mediaID)
		}
		attQuery += " ON CONFLICT DO NOTHING"

		if _, err = tx.ExecContext(ctx, attQuery, attValues...); err != nil {
			return fmt.Errorf("rfq repository: batch insert attachments %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("rfq repository: commit %w", err)
	}
	return nil
}

// Update сохраняет изменённые поля заявки.
func (r *RFQRepository) Update(ctx context.Context, rfq *models.RFQ) error {
	query := `
		UPDATE rfqs
		SET title = $2, description = $3, category = $4, visibility = $5,
		    status = $6, budget_hint = $7, deadline_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		rfq.ID, rfq.Title, rfq.Description, rfq.Category,
		rfq.Visibility, rfq.Status, rfq.BudgetHint, rfq.DeadlineAt,
	).Scan(&rfq.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRFQNotFound
		}
		return fmt.Errorf("rfq repository: update %w", err)
	}
	return nil
}

// UpdateStatus переводит заявку в новый статус.
func (r *RFQRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rfqs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("rfq repository: update status %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrRFQNotFound
	}
	return nil
}

// Delete удаляет заявку (вложения и котировки каскадом).
func (r *RFQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rfqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rfq repository: delete %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrRFQNotFound
	}
	return nil
}

// ListPublic возвращает открытые публичные заявки, новые первыми.
func (r *RFQRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.RFQ, error) {
	var rfqs []models.RFQ
	query := `
		SELECT r.id, r.creator_id, r.title, r.description, r.category, r.visibility, r.status,
		       r.budget_hint, r.deadline_at, r.created_at, r.updated_at,
		       (SELECT COUNT(*) FROM quotes q WHERE q.rfq_id = r.id) AS quotes_count
		FROM rfqs r
		WHERE r.visibility = $1 AND r.status = $2
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`
	if err := r.db.SelectContext(ctx, &rfqs, query,
		models.RFQVisibilityPublic, models.RFQStatusOpen, limit, offset); err != nil {
		return nil, fmt.Errorf("rfq repository: list public %w", err)
	}
	return rfqs, nil
}

// ListByCreator возвращает заявки автора, новые первыми.
func (r *RFQRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.RFQ, error) {
	var rfqs []models.RFQ
	query := `
		SELECT r.id, r.creator_id, r.title, r.description, r.category, r.visibility, r.status,
		       r.budget_hint, r.deadline_at, r.created_at, r.updated_at,
		       (SELECT COUNT(*) FROM quotes q WHERE q.rfq_id = r.id) AS quotes_count
		FROM rfqs r
		WHERE r.creator_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &rfqs, query, creatorID, limit, offset); err != nil {
		return nil, fmt.Errorf("rfq repository: list by creator %w", err)
	}
	return rfqs, nil
}

// ListAttachments возвращает вложения заявки вместе с данными файлов.
func (r *RFQRepository) ListAttachments(ctx context.Context, rfqID uuid.UUID) ([]models.RFQAttachment, error) {
	query := `
		SELECT
			ra.id, ra.rfq_id, ra.media_id, ra.created_at,
			mf.id, mf.user_id, mf.file_path, mf.file_type, mf.file_size, mf.is_public, mf.created_at
		FROM rfq_attachments ra
		JOIN media_files mf ON mf.id = ra.media_id
		WHERE ra.rfq_id = $1
		ORDER BY ra.created_at
	`
	rows, err := r.db.QueryxContext(ctx, query, rfqID)
	if err != nil {
		return nil, fmt.Errorf("rfq repository: list attachments %w", err)
	}
	defer rows.Close()

	var attachments []models.RFQAttachment
	for rows.Next() {
		var attachment models.RFQAttachment
		var media models.MediaFile
		var mediaUserID *uuid.UUID

		if err := rows.Scan(
			&attachment.ID, &attachment.RFQID, &attachment.MediaID, &attachment.CreatedAt,
			&media.ID, &mediaUserID, &media.FilePath, &media.FileType,
			&media.FileSize, &media.IsPublic, &media.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rfq repository: scan attachment %w", err)
		}

		media.UserID = mediaUserID
		attachment.Media = &media
		attachments = append(attachments, attachment)
	}

	return attachments, rows.Err()
}

// GetCreatorStats возвращает счётчики заявок автора по статусам и общее
// число полученных котировок.
func (r *RFQRepository) GetCreatorStats(ctx context.Context, creatorID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'open') AS open,
			COUNT(*) FILTER (WHERE status = 'closed') AS closed,
			COUNT(*) FILTER (WHERE status = 'awarded') AS awarded,
			COALESCE((SELECT COUNT(*) FROM quotes q JOIN rfqs r2 ON r2.id = q.rfq_id WHERE r2.creator_id = $1), 0) AS quotes_received
		FROM rfqs
		WHERE creator_id = $1
	`

	var row struct {
		Total          int `db:"total"`
		Open           int `db:"open"`
		Closed         int `db:"closed"`
		Awarded        int `db:"awarded"`
		QuotesReceived int `db:"quotes_received"`
	}
	if err := r.db.GetContext(ctx, &row, query, creatorID); err != nil {
		return nil, fmt.Errorf("rfq repository: creator stats %w", err)
	}

	return map[string]int{
		"total":           row.Total,
		"open":            row.Open,
		"closed":          row.Closed,
		"awarded":         row.Awarded,
		"quotes_received": row.QuotesReceived,
	}, nil
}
