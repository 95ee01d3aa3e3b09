package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type VendorRepositoryAdapter struct {
	db *sqlx.DB
}

func NewVendorRepositoryAdapter(db *sqlx.DB) *VendorRepositoryAdapter {
	return &VendorRepositoryAdapter{db: db}
}

func (r *VendorRepositoryAdapter) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.VendorProfile, error) {
	result := make(map[uuid.UUID]*entity.VendorProfile)
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []vendorProfileRow
	query := `
		SELECT user_id, display_name, phone, contact_email, rating, verified, location, updated_at
		FROM vendor_profiles WHERE user_id = ANY($1)
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить карточки поставщиков")
	}

	for _, row := range rows {
		result[row.UserID] = row.toEntity()
	}
	return result, nil
}

type vendorProfileRow struct {
	UserID       uuid.UUID `db:"user_id"`
	DisplayName  string    `db:"display_name"`
	Phone        *string   `db:"phone"`
	ContactEmail *string   `db:"contact_email"`
	Rating       *float64  `db:"rating"`
	Verified     bool      `db:"verified"`
	Location     *string   `db:"location"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (v *vendorProfileRow) toEntity() *entity.VendorProfile {
	return &entity.VendorProfile{
		UserID:       v.UserID,
		DisplayName:  v.DisplayName,
		Phone:        v.Phone,
		ContactEmail: v.ContactEmail,
		Rating:       v.Rating,
		Verified:     v.Verified,
		Location:     v.Location,
		UpdatedAt:    v.UpdatedAt,
	}
}
