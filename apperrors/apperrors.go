package apperrors

import (
	"errors"
	"fmt"
)

/************************************************
/**** MARK: ERROR KINDS ****/
/************************************************/
const KIND_NOT_FOUND = "NOT_FOUND"
const KIND_FORBIDDEN = "FORBIDDEN"
const KIND_INVALID_STATE = "INVALID_STATE"
const KIND_VALIDATION_FAILED = "VALIDATION_FAILED"
const KIND_INVALID_CONTENT = "INVALID_CONTENT"
const KIND_INCOMPLETE_ASSESSMENT = "INCOMPLETE_ASSESSMENT"

// Error é o erro tipado que o núcleo devolve aos chamadores. Carrega o
// suficiente (entidade, id, estado atual/exigido) para a camada HTTP montar
// uma mensagem precisa; o núcleo nunca emite mensagem solta sem kind.
type Error struct {
	Kind          string `json:"kind"`
	Entity        string `json:"entity,omitempty"`
	ID            int64  `json:"id,omitempty"`
	Message       string `json:"message"`
	CurrentState  string `json:"current_state,omitempty"`
	RequiredState string `json:"required_state,omitempty"`
}

func (e *Error) Error() string {
	if e.Entity != "" && e.ID != 0 {
		return fmt.Sprintf("%s: %s %d: %s", e.Kind, e.Entity, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NotFound(entity string, id int64) *Error {
	return &Error{Kind: KIND_NOT_FOUND, Entity: entity, ID: id, Message: entity + " não encontrado"}
}

func Forbidden(entity string, id int64, msg string) *Error {
	return &Error{Kind: KIND_FORBIDDEN, Entity: entity, ID: id, Message: msg}
}

func InvalidState(entity string, id int64, current, required string) *Error {
	return &Error{
		Kind:          KIND_INVALID_STATE,
		Entity:        entity,
		ID:            id,
		Message:       "ação não permitida no estado " + current,
		CurrentState:  current,
		RequiredState: required,
	}
}

func ValidationFailed(msg string) *Error {
	return &Error{Kind: KIND_VALIDATION_FAILED, Message: msg}
}

func InvalidContent(entity string, id int64, msg string) *Error {
	return &Error{Kind: KIND_INVALID_CONTENT, Entity: entity, ID: id, Message: msg}
}

func IncompleteAssessment(entity string, id int64, answered, applicable int) *Error {
	return &Error{
		Kind:    KIND_INCOMPLETE_ASSESSMENT,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("avaliação incompleta: %d de %d perguntas aplicáveis respondidas", answered, applicable),
	}
}

// KindOf devolve o kind do erro, ou vazio quando não é um *Error.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
