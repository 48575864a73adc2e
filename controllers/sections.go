package controllers

import (
	"net/http"

	"avalia/services"

	"github.com/gin-gonic/gin"
)

type ReorderPayload struct {
	OrderedIDs []int64 `json:"ordered_ids" form:"ordered_ids"`
}

// GET /api/forms/:id/sections
func GetSections(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	formID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if _, err := svc.GetFormForViewer(formID, user); err != nil {
		RespondServiceError(c, err)
		return
	}
	sections, err := svc.ListSections(formID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"sections": sections})
}

// POST /api/forms/:id/sections (revisor)
func CreateSection(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	formID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload services.SectionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	section, err := svc.CreateSection(formID, user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"section": section})
}

// PUT /api/sections/:id (revisor)
func UpdateSection(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload services.SectionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	section, err := svc.UpdateSection(id, user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"section": section})
}

// DELETE /api/sections/:id (revisor)
func DeleteSection(c *gin.Context) {
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
	if err := svc.DeleteSection(id, user.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// PUT /api/forms/:id/sections/reorder (revisor)
func ReorderSections(c *gin.Context) {
	formID, ok := ParamID(c, "id")
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
	if err := svc.ReorderSections(formID, payload.OrderedIDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "reordered"})
}
