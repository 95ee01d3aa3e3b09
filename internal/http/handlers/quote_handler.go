package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokohub/rfq-backend/internal/dto"
	"github.com/sokohub/rfq-backend/internal/http/handlers/common"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/service"
)

// QuoteHandler предоставляет HTTP слой для откликов поставщиков.
type QuoteHandler struct {
	quotes *service.QuoteService
}

// NewQuoteHandler создаёт хэндлер.
func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Submit обрабатывает POST /rfqs/:id/quotes.
func (h *QuoteHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	role, err := common.CurrentUserRole(c)
	if err != nil || role != models.RoleVendor {
		common.RespondForbidden(c, "котировки отправляют только поставщики")
		return
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SubmitQuoteRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	quote, err := h.quotes.SubmitQuote(c.Request.Context(), service.SubmitQuoteInput{
		RFQID:    rfqID,
		VendorID: userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Timeline: req.Timeline,
		Message:  req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, quote)
}

// UpdateMy обрабатывает PUT /quotes/:id.
func (h *QuoteHandler) UpdateMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	quoteID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateQuoteRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	quote, err := h.quotes.UpdateMyQuote(c.Request.Context(), service.UpdateQuoteInput{
		QuoteID:  quoteID,
		VendorID: userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Timeline: req.Timeline,
		Message:  req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, quote)
}

// ListMy обрабатывает GET /quotes/my.
func (h *QuoteHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)

	quotes, err := h.quotes.ListMyQuotes(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, quotes)
}
