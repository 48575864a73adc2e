package controllers

import (
	"net/http"

	dbpkg "avalia/db"
	"avalia/services"

	"github.com/gin-gonic/gin"
)

type AssignPayload struct {
	Email string `json:"email" form:"email"`
}

type BulkPayload struct {
	FormIDs []int64 `json:"form_ids" form:"form_ids"`
	Email   string  `json:"email" form:"email"`
}

func serviceFor(c *gin.Context) *services.Service {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return nil
	}
	return services.New(db)
}

// POST /api/forms (revisor)
func CreateForm(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var payload services.FormPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	form, err := svc.CreateForm(user.ID, payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// GET /api/forms
func GetForms(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	forms, err := svc.ListForms(user)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"forms": forms})
}

// GET /api/forms/:id
func GetFormByID(c *gin.Context) {
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
	form, err := svc.GetFormForViewer(id, user)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// POST /api/forms/:id/assign (revisor)
func AssignForm(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload AssignPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Email == "" {
		RespondError(c, "email é obrigatório", http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	form, err := svc.AssignForm(id, user.ID, payload.Email)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// POST /api/forms/:id/submit (preenchedor)
func SubmitForm(c *gin.Context) {
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
	form, err := svc.Submit(id, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// POST /api/forms/:id/return (revisor)
func ReturnForm(c *gin.Context) {
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
	form, err := svc.ReturnForm(id, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// POST /api/forms/:id/approve (revisor)
func ApproveForm(c *gin.Context) {
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
	form, err := svc.Approve(id, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"form": form})
}

// POST /api/forms/:id/conclude (revisor)
func ConcludeForm(c *gin.Context) {
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
	snapshot, err := svc.Conclude(id, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"snapshot": snapshot})
}

// DELETE /api/forms/:id (revisor)
func DeleteForm(c *gin.Context) {
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
	if err := svc.DeleteForm(id, user.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// POST /api/forms/assign-all (revisor)
func AssignAllForms(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var payload BulkPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload.FormIDs) == 0 || payload.Email == "" {
		RespondError(c, "form_ids e email são obrigatórios", http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	RespondSuccess(c, gin.H{"results": svc.AssignAll(payload.FormIDs, user.ID, payload.Email)})
}

// POST /api/forms/submit-all (preenchedor)
func SubmitAllForms(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var payload BulkPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload.FormIDs) == 0 {
		RespondError(c, "form_ids é obrigatório", http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	RespondSuccess(c, gin.H{"results": svc.SubmitAll(payload.FormIDs, user.ID)})
}

// POST /api/forms/return-all (revisor)
func ReturnAllForms(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var payload BulkPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload.FormIDs) == 0 {
		RespondError(c, "form_ids é obrigatório", http.StatusBadRequest)
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	RespondSuccess(c, gin.H{"results": svc.ReturnAll(payload.FormIDs, user.ID)})
}
