package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/dto"
	"github.com/sokohub/rfq-backend/internal/export"
	"github.com/sokohub/rfq-backend/internal/http/handlers/common"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/service"
)

// ComparisonHandler предоставляет HTTP слой страницы сравнения котировок:
// просмотр, принятие и отклонение, назначение работы, экспорт.
type ComparisonHandler struct {
	quotes      *service.QuoteService
	assignments *service.AssignmentService
}

// NewComparisonHandler создаёт хэндлер.
func NewComparisonHandler(quotes *service.QuoteService, assignments *service.AssignmentService) *ComparisonHandler {
	return &ComparisonHandler{
		quotes:      quotes,
		assignments: assignments,
	}
}

// Get обрабатывает GET /rfqs/:id/comparison.
func (h *ComparisonHandler) Get(c *gin.Context) {
	cmp, ok := h.loadComparison(c)
	if !ok {
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewComparisonResponse(cmp))
}

// Accept обрабатывает POST /quotes/:id/accept.
func (h *ComparisonHandler) Accept(c *gin.Context) {
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

	quote, err := h.quotes.AcceptQuote(c.Request.Context(), userID, quoteID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, quote)
}

// Reject обрабатывает POST /quotes/:id/reject.
func (h *ComparisonHandler) Reject(c *gin.Context) {
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

	quote, err := h.quotes.RejectQuote(c.Request.Context(), userID, quoteID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, quote)
}

// Assign обрабатывает POST /quotes/:id/assign.
func (h *ComparisonHandler) Assign(c *gin.Context) {
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

	var req dto.AssignJobRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		common.RespondBadRequest(c, "start_date должен быть в формате RFC3339")
		return
	}

	project, err := h.assignments.AssignJob(c.Request.Context(), service.AssignJobInput{
		QuoteID:   quoteID,
		ActorID:   userID,
		StartDate: &startDate,
		Notes:     req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, project)
}

// ExportCSV обрабатывает GET /rfqs/:id/export/csv.
func (h *ComparisonHandler) ExportCSV(c *gin.Context) {
	cmp, ok := h.loadComparison(c)
	if !ok {
		return
	}

	quotes, vendors := flattenComparison(cmp)

	data, err := export.CSV(quotes, vendors)
	if err != nil {
		if errors.Is(err, export.ErrNoQuotes) {
			common.RespondBadRequest(c, "нет котировок для экспорта")
			return
		}
		c.Error(err)
		return
	}

	filename := export.Filename(cmp.RFQ.ID, "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportPDF обрабатывает GET /rfqs/:id/export/pdf.
func (h *ComparisonHandler) ExportPDF(c *gin.Context) {
	cmp, ok := h.loadComparison(c)
	if !ok {
		return
	}

	quotes, vendors := flattenComparison(cmp)

	data, err := export.PDF(cmp.RFQ, quotes, vendors)
	if err != nil {
		if errors.Is(err, export.ErrNoQuotes) {
			common.RespondBadRequest(c, "нет котировок для экспорта")
			return
		}
		common.RespondInternalError(c, "не удалось сформировать PDF")
		return
	}

	filename := export.Filename(cmp.RFQ.ID, "pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Projects обрабатывает GET /projects.
func (h *ComparisonHandler) Projects(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)

	projects, err := h.assignments.ListMyProjects(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, projects)
}

// GetProject обрабатывает GET /projects/:id.
func (h *ComparisonHandler) GetProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.assignments.GetProject(c.Request.Context(), projectID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, project)
}

// loadComparison загружает страницу сравнения для текущего пользователя.
// Экспорт и просмотр используют одну и ту же ролевую фильтрацию.
func (h *ComparisonHandler) loadComparison(c *gin.Context) (*service.Comparison, bool) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return nil, false
	}

	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return nil, false
	}

	rfqID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return nil, false
	}

	cmp, err := h.quotes.GetComparison(c.Request.Context(), rfqID, userID, role)
	if err != nil {
		c.Error(err)
		return nil, false
	}

	return cmp, true
}

// flattenComparison возвращает котировки и карту карточек поставщиков
// из уже загруженного сравнения, без повторных запросов к БД.
func flattenComparison(cmp *service.Comparison) ([]models.Quote, map[uuid.UUID]models.VendorProfile) {
	quotes := make([]models.Quote, 0, len(cmp.Quotes))
	vendors := make(map[uuid.UUID]models.VendorProfile, len(cmp.Quotes))
	for _, eq := range cmp.Quotes {
		quotes = append(quotes, eq.Quote)
		if eq.Vendor != nil {
			vendors[eq.Quote.VendorID] = *eq.Vendor
		}
	}
	return quotes, vendors
}
