package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/repository/common"
)

// ErrMediaNotFound возвращается, если файл не найден.
var ErrMediaNotFound = errors.New("media not found")

// MediaRepository отвечает за метаданные загруженных файлов.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository создаёт новый экземпляр.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create сохраняет метаданные файла.
func (r *MediaRepository) Create(ctx context.Context, media *models.MediaFile) error {
	query := `
		INSERT INTO media_files (user_id, file_path, file_type, file_size, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		media.UserID, media.FilePath, media.FileType, media.FileSize, media.IsPublic,
	).Scan(&media.ID, &media.CreatedAt); err != nil {
		return fmt.Errorf("media repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает метаданные файла.
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	return common.GetByID[models.MediaFile](ctx, r.db, "media_files", id, ErrMediaNotFound)
}

// Delete удаляет метаданные файла, принадлежащего пользователю.
func (r *MediaRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*models.MediaFile, error) {
	media, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media.UserID == nil || *media.UserID != userID {
		return nil, ErrMediaNotFound
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM media_files WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("media repository: delete %w", err)
	}
	return media, nil
}
