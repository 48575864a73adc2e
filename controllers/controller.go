package controllers

import (
	"errors"
	"net/http"

	"avalia/apperrors"
	"avalia/config"

	"github.com/gin-gonic/gin"
)

var cfg config.Configuration

// SetConfigurations injeta a configuração carregada no main (mesmo padrão do db).
func SetConfigurations(configuration config.Configuration) {
	cfg = configuration
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondServiceError traduz o erro tipado do núcleo para o status HTTP.
// O corpo leva kind + contexto para o front montar a mensagem exata.
func RespondServiceError(c *gin.Context, err error) {
	var e *apperrors.Error
	if !errors.As(err, &e) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusBadRequest
	switch e.Kind {
	case apperrors.KIND_NOT_FOUND:
		status = http.StatusNotFound
	case apperrors.KIND_FORBIDDEN:
		status = http.StatusForbidden
	case apperrors.KIND_INVALID_STATE:
		status = http.StatusConflict
	case apperrors.KIND_VALIDATION_FAILED:
		status = http.StatusBadRequest
	case apperrors.KIND_INVALID_CONTENT:
		status = http.StatusUnprocessableEntity
	case apperrors.KIND_INCOMPLETE_ASSESSMENT:
		status = http.StatusPreconditionFailed
	}
	c.JSON(status, gin.H{"error": e.Message, "detail": e})
}
