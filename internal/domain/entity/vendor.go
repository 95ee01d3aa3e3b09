package entity

import (
	"time"

	"github.com/google/uuid"
)

type VendorProfile struct {
	UserID       uuid.UUID
	DisplayName  string
	Phone        *string
	ContactEmail *string
	Rating       *float64
	Verified     bool
	Location     *string
	UpdatedAt    time.Time
}

// RatingOrZero возвращает рейтинг поставщика, считая отсутствующий равным нулю.
func (v *VendorProfile) RatingOrZero() float64 {
	if v.Rating == nil {
		return 0
	}
	return *v.Rating
}
