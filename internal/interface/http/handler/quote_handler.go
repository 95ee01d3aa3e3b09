package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/interface/http/dto"
	"github.com/sokohub/rfq-backend/internal/interface/http/response"
	"github.com/sokohub/rfq-backend/internal/usecase/quote"
)

type QuoteHandler struct {
	getComparisonUC *quote.GetComparisonUseCase
	updateStatusUC  *quote.UpdateQuoteStatusUseCase
	assignJobUC     *quote.AssignJobUseCase
}

func NewQuoteHandler(
	getComparisonUC *quote.GetComparisonUseCase,
	updateStatusUC *quote.UpdateQuoteStatusUseCase,
	assignJobUC *quote.AssignJobUseCase,
) *QuoteHandler {
	return &QuoteHandler{
		getComparisonUC: getComparisonUC,
		updateStatusUC:  updateStatusUC,
		assignJobUC:     assignJobUC,
	}
}

func (h *QuoteHandler) GetComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	rfqID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	cmp, err := h.getComparisonUC.Execute(c.Request.Context(), rfqID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToComparisonResponse(cmp))
}

func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный ID котировки")
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	updated, err := h.updateStatusUC.Execute(c.Request.Context(), quoteID, userID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToQuoteResponse(updated))
}

func (h *QuoteHandler) AssignJob(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "некорректный ID котировки")
		return
	}

	var req dto.AssignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	startDate, err := dto.ParseStartDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "некорректный формат даты начала работ")
		return
	}

	project, err := h.assignJobUC.Execute(c.Request.Context(), quote.AssignJobInput{
		QuoteID:   quoteID,
		ActorID:   userID,
		StartDate: startDate,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProjectResponse(project))
}
