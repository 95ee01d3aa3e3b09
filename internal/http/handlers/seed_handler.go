package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokohub/rfq-backend/internal/dto"
	"github.com/sokohub/rfq-backend/internal/service"
)

// SeedHandler обрабатывает запросы на генерацию тестовых данных.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed генерирует тестовые данные.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	if req.NumUsers < 1 {
		req.NumUsers = 30
	}
	if req.NumRFQs < 1 {
		req.NumRFQs = 50
	}
	if req.NumUsers > 1000 {
		req.NumUsers = 1000
	}
	if req.NumRFQs > 5000 {
		req.NumRFQs = 5000
	}

	if err := h.seedService.SeedData(c.Request.Context(), req.NumUsers, req.NumRFQs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate seed data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Seed data generated successfully",
		"num_users": req.NumUsers,
		"num_rfqs":  req.NumRFQs,
	})
}
