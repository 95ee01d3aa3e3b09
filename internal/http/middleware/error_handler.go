package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sokohub/rfq-backend/internal/logger"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно. Ошибки apperror
// раскрываются с их кодом и статусом, сырые ошибки хранилища маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.HTTPStatus, gin.H{
				"error": appErr.Message,
				"code":  appErr.Code,
			})
			return
		}

		statusCode, message := mapRepositoryError(err)
		c.JSON(statusCode, gin.H{"error": message})
	}
}

// mapRepositoryError переводит сентинельные ошибки хранилища в HTTP статусы.
func mapRepositoryError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, "пользователь не найден"
	case errors.Is(err, repository.ErrRFQNotFound):
		return http.StatusNotFound, "заявка не найдена"
	case errors.Is(err, repository.ErrQuoteNotFound):
		return http.StatusNotFound, "котировка не найдена"
	case errors.Is(err, repository.ErrProjectNotFound):
		return http.StatusNotFound, "проект не найден"
	case errors.Is(err, repository.ErrVendorProfileNotFound):
		return http.StatusNotFound, "карточка поставщика не найдена"
	case errors.Is(err, repository.ErrNotificationNotFound):
		return http.StatusNotFound, "уведомление не найдено"
	case errors.Is(err, repository.ErrMediaNotFound):
		return http.StatusNotFound, "файл не найден"
	case errors.Is(err, repository.ErrQuoteDuplicate):
		return http.StatusConflict, "вы уже отправили котировку на эту заявку"
	default:
		return http.StatusInternalServerError, "внутренняя ошибка сервера"
	}
}
