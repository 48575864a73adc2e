package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID extrai um id numérico positivo do path; em falha já responde 400.
func ParamID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	if raw == "" {
		RespondError(c, "parâmetro "+name+" ausente na rota", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, "parâmetro "+name+" precisa ser um id numérico", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
