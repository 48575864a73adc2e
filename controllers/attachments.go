package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"avalia/services"
	"avalia/tools"

	"github.com/gin-gonic/gin"
)

// uploadMeta grava o arquivo em disco e monta os metadados do anexo.
func uploadMeta(c *gin.Context) (*services.AttachmentMeta, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, "file é obrigatório", http.StatusBadRequest)
		return nil, false
	}

	stored := tools.StoredFileName(file.Filename)
	path := filepath.Join(cfg.StorageDir, stored)
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return nil, false
	}

	return &services.AttachmentMeta{
		OriginalName: file.Filename,
		FileName:     stored,
		Path:         path,
		MimeType:     file.Header.Get("Content-Type"),
		Size:         file.Size,
		Reference:    c.PostForm("reference"),
	}, true
}

// POST /api/sections/:id/attachments (multipart: file, category, reference)
func UploadSectionAttachment(c *gin.Context) {
	sectionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	meta, ok := uploadMeta(c)
	if !ok {
		return
	}
	att, err := svc.SaveSectionAttachment(sectionID, c.PostForm("category"), *meta)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"attachment": att})
}

// POST /api/questions/:id/attachments (multipart: file, category, reference)
func UploadQuestionAttachment(c *gin.Context) {
	questionID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	meta, ok := uploadMeta(c)
	if !ok {
		return
	}
	att, err := svc.SaveQuestionAttachment(questionID, c.PostForm("category"), *meta)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"attachment": att})
}

// GET /api/attachments/:id/file
func DownloadAttachment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	att, err := svc.GetAttachment(id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.FileAttachment(att.Path, att.OriginalName)
}

// DELETE /api/attachments/:id
func DeleteAttachment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if err := svc.DeleteAttachment(id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
