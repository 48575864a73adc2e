package services

import (
	"avalia/apperrors"
	"avalia/models"
	"avalia/workflow"

	"github.com/jinzhu/gorm"
)

type QuestionPayload struct {
	Text        string `json:"text" form:"text"`
	Description string `json:"description" form:"description"`
}

func (s *Service) GetQuestion(questionID int64) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("question", questionID)
		}
		return nil, err
	}
	return &question, nil
}

func (s *Service) ListQuestions(sectionID int64) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("section_id = ?", sectionID).Order("sort_order asc, id asc").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *Service) CreateQuestion(sectionID, actorID int64, p QuestionPayload) (*models.Question, error) {
	section, err := s.GetSection(sectionID)
	if err != nil {
		return nil, err
	}
	form, err := s.GetForm(section.FormID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("section", sectionID, "apenas o criador pode montar a árvore")
	}
	if p.Text == "" {
		return nil, apperrors.ValidationFailed("text é obrigatório")
	}

	unlock := lockCollection(sectionKey(sectionID))
	defer unlock()

	var maxOrder int
	s.db.Model(&models.Question{}).Where("section_id = ?", sectionID).
		Select("COALESCE(MAX(sort_order), -1)").Row().Scan(&maxOrder)

	question := models.Question{
		SectionID:    sectionID,
		Text:         p.Text,
		Description:  p.Description,
		IsApplicable: true,
		SortOrder:    maxOrder + 1,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *Service) UpdateQuestion(questionID, actorID int64, p QuestionPayload) (*models.Question, error) {
	question, form, err := s.questionWithForm(questionID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("question", questionID, "apenas o criador pode editar a pergunta")
	}

	if p.Text != "" {
		question.Text = p.Text
	}
	question.Description = p.Description
	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (s *Service) DeleteQuestion(questionID, actorID int64) error {
	question, form, err := s.questionWithForm(questionID)
	if err != nil {
		return err
	}
	if form.CreatorID != actorID {
		return apperrors.Forbidden("question", questionID, "apenas o criador pode excluir a pergunta")
	}

	unlock := lockCollection(sectionKey(question.SectionID))
	defer unlock()

	tx := s.db.Begin()
	if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("question_id = ?", questionID).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Question{}, "id = ?", questionID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := renumberQuestions(tx, question.SectionID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// ToggleApplicable alterna a aplicabilidade de uma pergunta. O revisor pode
// sempre; o preenchedor atribuído só enquanto o formulário está aberto para
// edição; qualquer outro ator é barrado.
func (s *Service) ToggleApplicable(questionID, actorID int64, value bool) (*models.Question, error) {
	question, form, err := s.questionWithForm(questionID)
	if err != nil {
		return nil, err
	}

	var actor models.User
	if err := s.db.First(&actor, actorID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("user", actorID)
		}
		return nil, err
	}

	reviewer := actor.IsReviewer() || form.CreatorID == actorID
	if !reviewer {
		if form.AssignedToID == nil || *form.AssignedToID != actorID {
			return nil, apperrors.Forbidden("question", questionID, "usuário não participa deste formulário")
		}
	}
	if err := workflow.CanToggleApplicable(form.ID, form.Status, reviewer); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Question{}).Where("id = ?", questionID).
		Update("is_applicable", value).Error
	if err != nil {
		return nil, err
	}
	question.IsApplicable = value
	return question, nil
}

// ReorderQuestions renumera as perguntas da seção conforme a ordem dada.
func (s *Service) ReorderQuestions(sectionID int64, orderedIDs []int64) error {
	if _, err := s.GetSection(sectionID); err != nil {
		return err
	}

	unlock := lockCollection(sectionKey(sectionID))
	defer unlock()

	questions, err := s.ListQuestions(sectionID)
	if err != nil {
		return err
	}
	existing := make(map[int64]bool, len(questions))
	for _, q := range questions {
		existing[q.ID] = true
	}
	if len(orderedIDs) != len(questions) {
		return apperrors.ValidationFailed("a reordenação precisa incluir todas as perguntas da seção")
	}
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return apperrors.NotFound("question", id)
		}
		if seen[id] {
			return apperrors.ValidationFailed("a reordenação não pode repetir perguntas")
		}
		seen[id] = true
	}

	tx := s.db.Begin()
	for index, id := range orderedIDs {
		err := tx.Model(&models.Question{}).
			Where("id = ? AND section_id = ?", id, sectionID).
			Update("sort_order", index).Error
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func renumberQuestions(tx *gorm.DB, sectionID int64) error {
	var questions []models.Question
	err := tx.Where("section_id = ?", sectionID).Order("sort_order asc, id asc").Find(&questions).Error
	if err != nil {
		return err
	}
	for index, q := range questions {
		if q.SortOrder == index {
			continue
		}
		err := tx.Model(&models.Question{}).Where("id = ?", q.ID).Update("sort_order", index).Error
		if err != nil {
			return err
		}
	}
	return nil
}
