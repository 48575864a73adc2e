package workflow

import (
	"avalia/apperrors"
	"avalia/models"
)

// Máquina de estados do ciclo de um formulário:
//
//	ASSIGNED -> IN_PROGRESS -> SUBMITTED -> COMPLETED
//	                              |
//	                              v
//	                          RETURNED -> IN_PROGRESS (na primeira resposta)
//
// As funções aqui são puras: recebem o estado atual e devolvem o novo estado
// ou um erro tipado, sem tocar em banco. Quem persiste é a camada de services,
// que só grava depois que a transição foi validada.

// CanEditAnswers diz se o preenchedor pode gravar respostas no estado atual.
func CanEditAnswers(status string) bool {
	switch status {
	case models.FORM_STATUS_ASSIGNED, models.FORM_STATUS_IN_PROGRESS, models.FORM_STATUS_RETURNED:
		return true
	}
	return false
}

// OnFirstAnswer devolve o estado após uma gravação de resposta bem-sucedida
// e se houve transição. ASSIGNED e RETURNED viram IN_PROGRESS; os demais
// estados editáveis não re-transicionam.
func OnFirstAnswer(status string) (string, bool) {
	switch status {
	case models.FORM_STATUS_ASSIGNED, models.FORM_STATUS_RETURNED:
		return models.FORM_STATUS_IN_PROGRESS, true
	}
	return status, false
}

// Assign sempre inicia um ciclo novo: qualquer estado vira ASSIGNED.
func Assign(string) string {
	return models.FORM_STATUS_ASSIGNED
}

// Submit valida IN_PROGRESS|RETURNED -> SUBMITTED.
func Submit(formID int64, status string) (string, error) {
	switch status {
	case models.FORM_STATUS_IN_PROGRESS, models.FORM_STATUS_RETURNED:
		return models.FORM_STATUS_SUBMITTED, nil
	}
	return status, apperrors.InvalidState("form", formID, status,
		models.FORM_STATUS_IN_PROGRESS+"|"+models.FORM_STATUS_RETURNED)
}

// Return valida SUBMITTED -> RETURNED.
func Return(formID int64, status string) (string, error) {
	if status == models.FORM_STATUS_SUBMITTED {
		return models.FORM_STATUS_RETURNED, nil
	}
	return status, apperrors.InvalidState("form", formID, status, models.FORM_STATUS_SUBMITTED)
}

// Approve valida SUBMITTED -> COMPLETED. COMPLETED encerra o ciclo; um novo
// Assign recomeça do zero.
func Approve(formID int64, status string) (string, error) {
	if status == models.FORM_STATUS_SUBMITTED {
		return models.FORM_STATUS_COMPLETED, nil
	}
	return status, apperrors.InvalidState("form", formID, status, models.FORM_STATUS_SUBMITTED)
}

// CanToggleApplicable valida a alternância de aplicabilidade de uma pergunta:
// o revisor pode sempre; o preenchedor só enquanto o formulário está aberto
// para edição.
func CanToggleApplicable(formID int64, status string, reviewer bool) error {
	if reviewer {
		return nil
	}
	if CanEditAnswers(status) {
		return nil
	}
	return apperrors.InvalidState("form", formID, status,
		models.FORM_STATUS_ASSIGNED+"|"+models.FORM_STATUS_IN_PROGRESS+"|"+models.FORM_STATUS_RETURNED)
}
