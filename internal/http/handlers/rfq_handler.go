package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/dto"
	"github.com/sokohub/rfq-backend/internal/http/handlers/common"
	"github.com/sokohub/rfq-backend/internal/service"
)

// RFQHandler предоставляет HTTP слой для заявок на котировки.
type RFQHandler struct {
	rfqs *service.RFQService
}

// NewRFQHandler создаёт хэндлер.
func NewRFQHandler(rfqs *service.RFQService) *RFQHandler {
	return &RFQHandler{rfqs: rfqs}
}

// Create обрабатывает POST /rfqs.
func (h *RFQHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateRFQRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := parseOptionalDate(req.DeadlineAt)
	if err != nil {
		common.RespondBadRequest(c, "deadline_at должен быть в формате RFC3339")
		return
	}

	attachmentIDs, err := parseUUIDs(req.Attachments)
	if err != nil {
		common.RespondBadRequest(c, "attachment_ids содержат невалидный UUID")
		return
	}

	rfq, err := h.rfqs.CreateRFQ(c.Request.Context(), service.CreateRFQInput{
		CreatorID:     userID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Visibility:    req.Visibility,
		BudgetHint:    req.BudgetHint,
		DeadlineAt:    deadline,
		AttachmentIDs: attachmentIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, rfq)
}

// Get обрабатывает GET /rfqs/:id.
func (h *RFQHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rfq, err := h.rfqs.GetRFQ(c.Request.Context(), rfqID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, rfq)
}

// Update обрабатывает PUT /rfqs/:id.
func (h *RFQHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateRFQRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := parseOptionalDate(req.DeadlineAt)
	if err != nil {
		common.RespondBadRequest(c, "deadline_at должен быть в формате RFC3339")
		return
	}

	rfq, err := h.rfqs.UpdateRFQ(c.Request.Context(), service.UpdateRFQInput{
		RFQID:       rfqID,
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Visibility:  req.Visibility,
		BudgetHint:  req.BudgetHint,
		DeadlineAt:  deadline,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, rfq)
}

// Close обрабатывает POST /rfqs/:id/close.
func (h *RFQHandler) Close(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.rfqs.CloseRFQ(c.Request.Context(), rfqID, userID); err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "заявка закрыта", nil)
}

// Delete обрабатывает DELETE /rfqs/:id.
func (h *RFQHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.rfqs.DeleteRFQ(c.Request.Context(), rfqID, userID); err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "заявка удалена", nil)
}

// ListPublic обрабатывает GET /rfqs.
func (h *RFQHandler) ListPublic(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	items, err := h.rfqs.ListPublicRFQs(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.RFQListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

// ListMy обрабатывает GET /rfqs/my.
func (h *RFQHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)

	items, err := h.rfqs.ListMyRFQs(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.RFQListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

// parseOptionalDate разбирает необязательную дату в RFC3339.
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseUUIDs разбирает список строковых UUID.
func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
