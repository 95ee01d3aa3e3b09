package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/dto"
	"github.com/sokohub/rfq-backend/internal/http/handlers/common"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/service"
)

// VendorHandler предоставляет HTTP слой для карточек поставщиков.
type VendorHandler struct {
	vendors *service.VendorService
}

// NewVendorHandler создаёт хэндлер.
func NewVendorHandler(vendors *service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// Get обрабатывает GET /vendors/:id.
func (h *VendorHandler) Get(c *gin.Context) {
	vendorID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.vendors.GetProfile(c.Request.Context(), vendorID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, profile)
}

// GetMy обрабатывает GET /vendors/me.
func (h *VendorHandler) GetMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	profile, err := h.vendors.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, profile)
}

// UpdateMy обрабатывает PUT /vendors/me.
func (h *VendorHandler) UpdateMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	role, err := common.CurrentUserRole(c)
	if err != nil || role != models.RoleVendor {
		common.RespondForbidden(c, "карточка доступна только поставщикам")
		return
	}

	var req dto.UpdateVendorProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var photoID *uuid.UUID
	if req.PhotoID != nil && *req.PhotoID != "" {
		parsed, err := uuid.Parse(*req.PhotoID)
		if err != nil {
			common.RespondBadRequest(c, "photo_id должен быть валидным UUID")
			return
		}
		photoID = &parsed
	}

	profile, err := h.vendors.UpdateProfile(c.Request.Context(), service.UpdateVendorProfileInput{
		UserID:            userID,
		DisplayName:       req.DisplayName,
		Phone:             req.Phone,
		ContactEmail:      req.ContactEmail,
		ResponseTimeHours: req.ResponseTimeHours,
		Location:          req.Location,
		PhotoID:           photoID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, profile)
}

// SetRating обрабатывает PUT /admin/vendors/:id/rating.
func (h *VendorHandler) SetRating(c *gin.Context) {
	vendorID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SetVendorRatingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.vendors.SetRating(c.Request.Context(), vendorID, req.Rating); err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "рейтинг обновлён", nil)
}

// SetVerified обрабатывает PUT /admin/vendors/:id/verified.
func (h *VendorHandler) SetVerified(c *gin.Context) {
	vendorID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SetVendorVerifiedRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.vendors.SetVerified(c.Request.Context(), vendorID, req.Verified); err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "статус верификации обновлён", nil)
}
