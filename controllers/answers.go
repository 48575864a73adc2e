package controllers

import (
	"net/http"

	"avalia/services"

	"github.com/gin-gonic/gin"
)

// PUT /api/questions/:id/answer (preenchedor)
func RecordAnswer(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	questionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload services.AnswerPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	answer, err := svc.RecordAnswer(questionID, user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"answer": answer})
}
