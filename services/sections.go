package services

import (
	"avalia/apperrors"
	"avalia/models"

	"github.com/jinzhu/gorm"
)

type SectionPayload struct {
	Item            string `json:"item" form:"item"`
	CustomLabel     string `json:"custom_label" form:"custom_label"`
	HasInternalNorm bool   `json:"has_internal_norm" form:"has_internal_norm"`
	NormReference   string `json:"norm_reference" form:"norm_reference"`
	Description     string `json:"description" form:"description"`
}

func (s *Service) GetSection(sectionID int64) (*models.Section, error) {
	var section models.Section
	if err := s.db.First(&section, sectionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("section", sectionID)
		}
		return nil, err
	}
	return &section, nil
}

func (s *Service) ListSections(formID int64) ([]models.Section, error) {
	var sections []models.Section
	err := s.db.Where("form_id = ?", formID).Order("sort_order asc, id asc").Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// CreateSection acrescenta uma seção ao fim da sequência do formulário.
func (s *Service) CreateSection(formID, actorID int64, p SectionPayload) (*models.Section, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("form", formID, "apenas o criador pode montar a árvore")
	}
	if p.Item == "" {
		return nil, apperrors.ValidationFailed("item é obrigatório")
	}

	unlock := lockCollection(formKey(formID))
	defer unlock()

	var maxOrder int
	s.db.Model(&models.Section{}).Where("form_id = ?", formID).
		Select("COALESCE(MAX(sort_order), -1)").Row().Scan(&maxOrder)

	section := models.Section{
		FormID:          formID,
		Item:            p.Item,
		CustomLabel:     p.CustomLabel,
		HasInternalNorm: p.HasInternalNorm,
		NormReference:   p.NormReference,
		Description:     p.Description,
		SortOrder:       maxOrder + 1,
	}
	if err := s.db.Create(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *Service) UpdateSection(sectionID, actorID int64, p SectionPayload) (*models.Section, error) {
	section, err := s.GetSection(sectionID)
	if err != nil {
		return nil, err
	}
	form, err := s.GetForm(section.FormID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("section", sectionID, "apenas o criador pode editar a seção")
	}

	if p.Item != "" {
		section.Item = p.Item
	}
	section.CustomLabel = p.CustomLabel
	section.HasInternalNorm = p.HasInternalNorm
	section.NormReference = p.NormReference
	section.Description = p.Description
	if err := s.db.Save(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection remove a seção em cascata (perguntas, respostas, anexos) e
// renumera as sobreviventes para manter a sequência densa, tudo em uma
// transação serializada por formulário.
func (s *Service) DeleteSection(sectionID, actorID int64) error {
	section, err := s.GetSection(sectionID)
	if err != nil {
		return err
	}
	form, err := s.GetForm(section.FormID)
	if err != nil {
		return err
	}
	if form.CreatorID != actorID {
		return apperrors.Forbidden("section", sectionID, "apenas o criador pode excluir a seção")
	}

	unlock := lockCollection(formKey(form.ID))
	defer unlock()

	tx := s.db.Begin()
	questionIDs := tx.Model(&models.Question{}).Where("section_id = ?", sectionID).Select("id").QueryExpr()
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("section_id = ?", sectionID).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("section_id = ?", sectionID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Section{}, "id = ?", sectionID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := renumberSections(tx, form.ID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// ReorderSections renumera as seções do formulário conforme a ordem dada.
// A lista precisa ser uma permutação exata das seções existentes.
func (s *Service) ReorderSections(formID int64, orderedIDs []int64) error {
	if _, err := s.GetForm(formID); err != nil {
		return err
	}

	unlock := lockCollection(formKey(formID))
	defer unlock()

	sections, err := s.ListSections(formID)
	if err != nil {
		return err
	}
	existing := make(map[int64]bool, len(sections))
	for _, sec := range sections {
		existing[sec.ID] = true
	}
	if len(orderedIDs) != len(sections) {
		return apperrors.ValidationFailed("a reordenação precisa incluir todas as seções do formulário")
	}
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return apperrors.NotFound("section", id)
		}
		// id repetido gravaria sort_order duplicado e omitiria uma irmã
		if seen[id] {
			return apperrors.ValidationFailed("a reordenação não pode repetir seções")
		}
		seen[id] = true
	}

	tx := s.db.Begin()
	for index, id := range orderedIDs {
		err := tx.Model(&models.Section{}).
			Where("id = ? AND form_id = ?", id, formID).
			Update("sort_order", index).Error
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// renumberSections reatribui 0..n-1 pela ordem atual, fechando o buraco
// deixado por uma exclusão.
func renumberSections(tx *gorm.DB, formID int64) error {
	var sections []models.Section
	err := tx.Where("form_id = ?", formID).Order("sort_order asc, id asc").Find(&sections).Error
	if err != nil {
		return err
	}
	for index, sec := range sections {
		if sec.SortOrder == index {
			continue
		}
		err := tx.Model(&models.Section{}).Where("id = ?", sec.ID).Update("sort_order", index).Error
		if err != nil {
			return err
		}
	}
	return nil
}
