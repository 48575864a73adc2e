package controllers

import (
	"net/http"

	"avalia/services"

	"github.com/gin-gonic/gin"
)

type ApplicablePayload struct {
	Value bool `json:"value" form:"value"`
}

// GET /api/sections/:id/questions
func GetQuestions(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	sectionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	section, err := svc.GetSection(sectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := svc.GetFormForViewer(section.FormID, user); err != nil {
		RespondServiceError(c, err)
		return
	}
	questions, err := svc.ListQuestions(sectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"questions": questions})
}

// POST /api/sections/:id/questions (revisor)
func CreateQuestion(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	sectionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload services.QuestionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	question, err := svc.CreateQuestion(sectionID, user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"question": question})
}

// PUT /api/questions/:id (revisor)
func UpdateQuestion(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload services.QuestionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	question, err := svc.UpdateQuestion(id, user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"question": question})
}

// DELETE /api/questions/:id (revisor)
func DeleteQuestion(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if err := svc.DeleteQuestion(id, user.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// PUT /api/questions/:id/applicable
func ToggleApplicable(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload ApplicablePayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	question, err := svc.ToggleApplicable(id, user.ID, payload.Value)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"question": question})
}

// PUT /api/sections/:id/questions/reorder (revisor)
func ReorderQuestions(c *gin.Context) {
	sectionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload ReorderPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if err := svc.ReorderQuestions(sectionID, payload.OrderedIDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "reordered"})
}
