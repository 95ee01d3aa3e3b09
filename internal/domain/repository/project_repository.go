package repository

import (
	"context"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
)

type ProjectRepository interface {
	// CreateWithAward сохраняет проект и переводит заявку в статус awarded
	// в одной транзакции.
	CreateWithAward(ctx context.Context, project *entity.Project) error
}
