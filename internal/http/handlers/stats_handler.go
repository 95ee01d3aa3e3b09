package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokohub/rfq-backend/internal/http/handlers/common"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/repository"
)

// StatsHandler отвечает за статистику текущего пользователя.
type StatsHandler struct {
	rfqs   *repository.RFQRepository
	quotes *repository.QuoteRepository
}

// NewStatsHandler создаёт экземпляр.
func NewStatsHandler(rfqs *repository.RFQRepository, quotes *repository.QuoteRepository) *StatsHandler {
	return &StatsHandler{
		rfqs:   rfqs,
		quotes: quotes,
	}
}

// GetMyStats возвращает статистику текущего пользователя. Покупателю
// отдаются счётчики его заявок, поставщику дополнительно счётчики котировок.
func (h *StatsHandler) GetMyStats(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	role, _ := common.CurrentUserRole(c)

	rfqStats, err := h.rfqs.GetCreatorStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить статистику заявок"})
		return
	}

	stats := gin.H{"rfqs": rfqStats}

	if role == models.RoleVendor {
		quoteStats, err := h.quotes.GetVendorStats(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить статистику котировок"})
			return
		}
		stats["quotes"] = quoteStats
	}

	c.JSON(http.StatusOK, stats)
}
