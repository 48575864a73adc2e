package services

import (
	"avalia/apperrors"
	"avalia/classify"
	"avalia/models"
	"avalia/workflow"

	"github.com/jinzhu/gorm"
)

type AnswerPayload struct {
	Response        string `json:"response" form:"response"`
	Criticality     string `json:"criticality" form:"criticality"`
	Deficiency      string `json:"deficiency" form:"deficiency"`
	Recommendation  string `json:"recommendation" form:"recommendation"`
	Comments        string `json:"comments" form:"comments"`
	TestStatus      string `json:"test_status" form:"test_status"`
	TestDescription string `json:"test_description" form:"test_description"`
	TestRequisition string `json:"test_requisition" form:"test_requisition"`
	TestResponse    string `json:"test_response" form:"test_response"`
	TestSample      string `json:"test_sample" form:"test_sample"`
	TestEvidence    string `json:"test_evidence" form:"test_evidence"`
}

func (p AnswerPayload) validate() error {
	if !models.ValidResponse(p.Response) {
		return apperrors.ValidationFailed("response deve ser Sim, Não ou vazio")
	}
	if !models.ValidCriticality(p.Criticality) {
		return apperrors.ValidationFailed("criticality deve ser BAIXA, MEDIA, ALTA ou vazio")
	}
	if classify.IsNo(p.Response) && p.Deficiency == "" {
		return apperrors.ValidationFailed("deficiency é obrigatório quando a resposta é Não")
	}
	return nil
}

// RecordAnswer grava a resposta do preenchedor a uma pergunta. Escopo
// (question, filler): responder de novo atualiza no lugar. A primeira
// gravação bem-sucedida de um ciclo transiciona o formulário para
// IN_PROGRESS via um único UPDATE condicional: dois primeiros-escritores
// concorrentes não conseguem transicionar duas vezes.
func (s *Service) RecordAnswer(questionID, fillerID int64, p AnswerPayload) (*models.Answer, error) {
	question, form, err := s.questionWithForm(questionID)
	if err != nil {
		return nil, err
	}
	if form.AssignedToID == nil || *form.AssignedToID != fillerID {
		return nil, apperrors.Forbidden("question", questionID, "formulário não atribuído a este usuário")
	}
	if !workflow.CanEditAnswers(form.Status) {
		return nil, apperrors.InvalidState("form", form.ID, form.Status,
			models.FORM_STATUS_ASSIGNED+"|"+models.FORM_STATUS_IN_PROGRESS+"|"+models.FORM_STATUS_RETURNED)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	// resposta != Não limpa deficiência/recomendação, nunca deixa obsoleto
	deficiency := p.Deficiency
	recommendation := p.Recommendation
	if !classify.IsNo(p.Response) {
		deficiency = ""
		recommendation = ""
	}

	unlock := lockCollection(formKey(form.ID))
	defer unlock()

	tx := s.db.Begin()

	var answer models.Answer
	err = tx.Where("question_id = ? AND filler_id = ?", questionID, fillerID).First(&answer).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		tx.Rollback()
		return nil, err
	}
	answer.QuestionID = questionID
	answer.FillerID = fillerID
	answer.Response = p.Response
	answer.Criticality = p.Criticality
	answer.Deficiency = deficiency
	answer.Recommendation = recommendation
	answer.Comments = p.Comments
	if err := tx.Save(&answer).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	updates := map[string]interface{}{
		"response":         p.Response,
		"criticality":      p.Criticality,
		"deficiency":       deficiency,
		"recommendation":   recommendation,
		"test_status":      p.TestStatus,
		"test_description": p.TestDescription,
		"test_requisition": p.TestRequisition,
		"test_response":    p.TestResponse,
		"test_sample":      p.TestSample,
		"test_evidence":    p.TestEvidence,
	}
	if err := tx.Model(&models.Question{}).Where("id = ?", question.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if next, changed := workflow.OnFirstAnswer(form.Status); changed {
		res := tx.Model(&models.Form{}).
			Where("id = ? AND status IN (?)", form.ID,
				[]string{models.FORM_STATUS_ASSIGNED, models.FORM_STATUS_RETURNED}).
			Update("status", next)
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		// RowsAffected 0 aqui só significa que outra resposta chegou antes
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &answer, nil
}

// questionWithForm resolve pergunta -> seção -> formulário.
func (s *Service) questionWithForm(questionID int64) (*models.Question, *models.Form, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil, apperrors.NotFound("question", questionID)
		}
		return nil, nil, err
	}
	var section models.Section
	if err := s.db.First(&section, question.SectionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil, apperrors.NotFound("section", question.SectionID)
		}
		return nil, nil, err
	}
	form, err := s.GetForm(section.FormID)
	if err != nil {
		return nil, nil, err
	}
	return &question, form, nil
}
