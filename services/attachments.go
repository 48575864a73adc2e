package services

import (
	"avalia/apperrors"
	"avalia/models"

	"github.com/jinzhu/gorm"
)

// AttachmentMeta descreve o arquivo já gravado em disco pelo controller.
type AttachmentMeta struct {
	OriginalName string
	FileName     string
	Path         string
	MimeType     string
	Size         int64
	Reference    string
}

// SaveSectionAttachment grava o anexo de norma de uma seção. Vale no máximo
// um anexo por (dono, categoria): o anterior da mesma categoria é apagado na
// mesma transação que cria o novo, então salvar repetido substitui em vez de
// acumular. O arquivo órfão em disco fica para o varredor (workers).
func (s *Service) SaveSectionAttachment(sectionID int64, category string, meta AttachmentMeta) (*models.Attachment, error) {
	if category != models.ATTACHMENT_CATEGORY_NORMA {
		return nil, apperrors.ValidationFailed("anexo de seção deve ter categoria NORMA")
	}
	if _, err := s.GetSection(sectionID); err != nil {
		return nil, err
	}

	att := models.Attachment{
		SectionID:    &sectionID,
		Category:     category,
		OriginalName: meta.OriginalName,
		FileName:     meta.FileName,
		Path:         meta.Path,
		MimeType:     meta.MimeType,
		Size:         meta.Size,
		Reference:    meta.Reference,
	}
	return s.replaceAttachment("section_id = ? AND category = ?", sectionID, category, &att)
}

// SaveQuestionAttachment grava um anexo de pergunta nas demais categorias.
func (s *Service) SaveQuestionAttachment(questionID int64, category string, meta AttachmentMeta) (*models.Attachment, error) {
	if !models.ValidAttachmentCategory(category) || category == models.ATTACHMENT_CATEGORY_NORMA {
		return nil, apperrors.ValidationFailed("categoria de anexo inválida para pergunta: " + category)
	}
	if _, err := s.GetQuestion(questionID); err != nil {
		return nil, err
	}

	att := models.Attachment{
		QuestionID:   &questionID,
		Category:     category,
		OriginalName: meta.OriginalName,
		FileName:     meta.FileName,
		Path:         meta.Path,
		MimeType:     meta.MimeType,
		Size:         meta.Size,
		Reference:    meta.Reference,
	}
	return s.replaceAttachment("question_id = ? AND category = ?", questionID, category, &att)
}

func (s *Service) replaceAttachment(where string, ownerID int64, category string, att *models.Attachment) (*models.Attachment, error) {
	tx := s.db.Begin()
	if err := tx.Where(where, ownerID, category).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(att).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return att, nil
}

func (s *Service) GetAttachment(attachmentID int64) (*models.Attachment, error) {
	var att models.Attachment
	if err := s.db.First(&att, attachmentID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("attachment", attachmentID)
		}
		return nil, err
	}
	return &att, nil
}

func (s *Service) DeleteAttachment(attachmentID int64) error {
	if _, err := s.GetAttachment(attachmentID); err != nil {
		return err
	}
	return s.db.Delete(&models.Attachment{}, "id = ?", attachmentID).Error
}

func (s *Service) ListSectionAttachments(sectionID int64) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := s.db.Where("section_id = ?", sectionID).Order("id asc").Find(&atts).Error
	return atts, err
}

func (s *Service) ListQuestionAttachments(questionID int64) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := s.db.Where("question_id = ?", questionID).Order("id asc").Find(&atts).Error
	return atts, err
}
