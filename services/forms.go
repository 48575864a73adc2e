package services

import (
	"encoding/json"
	"time"

	"avalia/apperrors"
	"avalia/models"
	"avalia/workflow"

	"github.com/jinzhu/gorm"
)

type FormPayload struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Legacy      bool   `json:"legacy" form:"legacy"`
}

// BulkResult é o resultado por entidade das variantes em lote. Entidade
// pulada sai na lista com o erro dela; nunca some em silêncio.
type BulkResult struct {
	ID    int64            `json:"id"`
	OK    bool             `json:"ok"`
	Error *apperrors.Error `json:"error,omitempty"`
}

func (s *Service) CreateForm(creatorID int64, p FormPayload) (*models.Form, error) {
	if p.Name == "" {
		return nil, apperrors.ValidationFailed("name é obrigatório")
	}
	form := models.Form{
		Name:        p.Name,
		Description: p.Description,
		Legacy:      p.Legacy,
		CreatorID:   creatorID,
		Status:      models.FORM_STATUS_ASSIGNED,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *Service) GetForm(formID int64) (*models.Form, error) {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("form", formID)
		}
		return nil, err
	}
	return &form, nil
}

// GetFormForViewer devolve o formulário apenas para quem participa dele:
// o criador ou o preenchedor atribuído. Qualquer outro usuário autenticado é
// barrado; a árvore, o progresso e o relatório seguem a mesma regra.
func (s *Service) GetFormForViewer(formID int64, user models.User) (*models.Form, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID == user.ID {
		return form, nil
	}
	if form.AssignedToID != nil && *form.AssignedToID == user.ID {
		return form, nil
	}
	return nil, apperrors.Forbidden("form", formID, "usuário não participa deste formulário")
}

// ListForms devolve os formulários visíveis ao usuário: criados por ele
// (revisor) ou atribuídos a ele (preenchedor).
func (s *Service) ListForms(user models.User) ([]models.Form, error) {
	var forms []models.Form
	q := s.db.Order("id asc")
	if user.IsReviewer() {
		q = q.Where("creator_id = ?", user.ID)
	} else {
		q = q.Where("assigned_to_id = ?", user.ID)
	}
	if err := q.Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// AssignForm cria/sobrescreve a atribuição e abre um ciclo novo em ASSIGNED.
// Só o criador do formulário pode atribuir; o alvo é localizado por e-mail.
func (s *Service) AssignForm(formID, actorID int64, targetEmail string) (*models.Form, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("form", formID, "apenas o criador pode atribuir o formulário")
	}

	var target models.User
	if err := s.db.Where("email = ?", targetEmail).First(&target).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperrors.NotFound("user", 0)
		}
		return nil, err
	}

	form.AssignedToID = &target.ID
	form.AssignedEmail = target.Email
	form.Status = workflow.Assign(form.Status)
	if err := s.db.Save(form).Error; err != nil {
		return nil, err
	}
	return form, nil
}

// Submit transiciona IN_PROGRESS|RETURNED -> SUBMITTED para o preenchedor
// atribuído. A gravação é um compare-and-set sobre o estado observado: se
// outro escritor mudou o estado no meio, nada é gravado e o erro reflete o
// estado encontrado.
func (s *Service) Submit(formID, fillerID int64) (*models.Form, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.AssignedToID == nil || *form.AssignedToID != fillerID {
		return nil, apperrors.Forbidden("form", formID, "formulário não atribuído a este usuário")
	}
	return s.transition(form, workflow.Submit)
}

// ReturnForm transiciona SUBMITTED -> RETURNED, reabrindo o ciclo. Só o
// criador do formulário devolve; o papel de revisor já foi garantido na rota.
func (s *Service) ReturnForm(formID, reviewerID int64) (*models.Form, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != reviewerID {
		return nil, apperrors.Forbidden("form", formID, "apenas o criador pode devolver o formulário")
	}
	return s.transition(form, workflow.Return)
}

// Approve transiciona SUBMITTED -> COMPLETED, encerrando o ciclo. Mesma
// regra de autoria do ReturnForm.
func (s *Service) Approve(formID, reviewerID int64) (*models.Form, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != reviewerID {
		return nil, apperrors.Forbidden("form", formID, "apenas o criador pode aprovar o formulário")
	}
	return s.transition(form, workflow.Approve)
}

func (s *Service) transition(form *models.Form, fn func(int64, string) (string, error)) (*models.Form, error) {
	next, err := fn(form.ID, form.Status)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Form{}).
		Where("id = ? AND status = ?", form.ID, form.Status).
		Update("status", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// alguém mudou o estado entre a leitura e a gravação
		current, err := s.GetForm(form.ID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.InvalidState("form", form.ID, current.Status, form.Status)
	}

	form.Status = next
	return form, nil
}

// Conclude arquiva o ciclo aprovado em um snapshot imutável e limpa a árvore
// viva para o próximo ciclo. Só o criador conclui, e só a partir de COMPLETED.
func (s *Service) Conclude(formID, actorID int64) (*models.FormSnapshot, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != actorID {
		return nil, apperrors.Forbidden("form", formID, "apenas o criador pode concluir o formulário")
	}
	if form.Status != models.FORM_STATUS_COMPLETED {
		return nil, apperrors.InvalidState("form", formID, form.Status, models.FORM_STATUS_COMPLETED)
	}

	unlock := lockCollection(formKey(formID))
	defer unlock()

	tree, err := s.BuildTree(formID)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(tree)
	if err != nil {
		return nil, apperrors.InvalidContent("form", formID, "árvore não serializável: "+err.Error())
	}

	now := time.Now()
	snapshot := models.FormSnapshot{
		FormID:      formID,
		Name:        form.Name,
		Content:     string(content),
		ConcludedBy: actorID,
		ConcludedAt: &now,
	}

	tx := s.db.Begin()
	if err := tx.Create(&snapshot).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := clearFormTree(tx, formID); err != nil {
		tx.Rollback()
		return nil, err
	}
	clear := map[string]interface{}{"assigned_to_id": nil, "assigned_email": ""}
	if err := tx.Model(&models.Form{}).Where("id = ?", formID).Updates(clear).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &snapshot, nil
}

func clearFormTree(tx *gorm.DB, formID int64) error {
	sectionIDs := tx.Model(&models.Section{}).Where("form_id = ?", formID).Select("id").QueryExpr()
	questionIDs := tx.Model(&models.Question{}).Where("section_id IN (?)", sectionIDs).Select("id").QueryExpr()

	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("form_id = ?", formID).Delete(&models.Section{}).Error; err != nil {
		return err
	}
	return nil
}

// DeleteForm apaga o formulário e tudo abaixo dele.
func (s *Service) DeleteForm(formID, actorID int64) error {
	form, err := s.GetForm(formID)
	if err != nil {
		return err
	}
	if form.CreatorID != actorID {
		return apperrors.Forbidden("form", formID, "apenas o criador pode excluir o formulário")
	}

	unlock := lockCollection(formKey(formID))
	defer unlock()

	tx := s.db.Begin()
	if err := clearFormTree(tx, formID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Form{}, "id = ?", formID).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

/************************************************
/**** MARK: BULK VARIANTS ****/
/************************************************/

// AssignAll aplica a regra de atribuição a cada formulário do conjunto,
// independentemente; cada um aparece no resultado com sucesso ou erro.
func (s *Service) AssignAll(formIDs []int64, actorID int64, targetEmail string) []BulkResult {
	return s.bulk(formIDs, func(id int64) error {
		_, err := s.AssignForm(id, actorID, targetEmail)
		return err
	})
}

func (s *Service) SubmitAll(formIDs []int64, fillerID int64) []BulkResult {
	return s.bulk(formIDs, func(id int64) error {
		_, err := s.Submit(id, fillerID)
		return err
	})
}

func (s *Service) ReturnAll(formIDs []int64, reviewerID int64) []BulkResult {
	return s.bulk(formIDs, func(id int64) error {
		_, err := s.ReturnForm(id, reviewerID)
		return err
	})
}

func (s *Service) bulk(ids []int64, fn func(int64) error) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		err := fn(id)
		if err == nil {
			results = append(results, BulkResult{ID: id, OK: true})
			continue
		}
		r := BulkResult{ID: id}
		if e, ok := err.(*apperrors.Error); ok {
			r.Error = e
		} else {
			r.Error = &apperrors.Error{Kind: apperrors.KIND_VALIDATION_FAILED, Message: err.Error()}
		}
		results = append(results, r)
	}
	return results
}
