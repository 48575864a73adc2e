package models

import "time"

/************************************************
/**** MARK: RESPONSE ****/
/************************************************/
const RESPONSE_SIM = "Sim"
const RESPONSE_NAO = "Não"

/************************************************
/**** MARK: CRITICALITY ****/
/************************************************/
const CRITICALITY_BAIXA = "BAIXA"
const CRITICALITY_MEDIA = "MEDIA"
const CRITICALITY_ALTA = "ALTA"

/************************************************
/**** MARK: TEST STATUS ****/
/************************************************/
const TEST_STATUS_PENDENTE = "Pendente"
const TEST_STATUS_REALIZADO = "Realizado"
const TEST_STATUS_NAO_APLICAVEL = "Não aplicável"

// Question representa um enunciado avaliável dentro de uma seção, respondido
// Sim/Não. Deficiency e Recommendation só existem quando a resposta é "Não";
// ao trocar a resposta esses campos são limpos, nunca deixados obsoletos.
type Question struct {
	ID           int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	SectionID    int64  `gorm:"not null;index" json:"section_id"`
	Text         string `gorm:"type:text;not null" json:"text" form:"text"`
	Description  string `gorm:"type:text" json:"description" form:"description"`
	IsApplicable bool   `gorm:"not null;default:true" json:"is_applicable"`
	Response     string `gorm:"default:''" json:"response"`
	Criticality  string `gorm:"default:''" json:"criticality"`

	// Sub-registro de execução de teste
	TestStatus      string `gorm:"default:''" json:"test_status" form:"test_status"`
	TestDescription string `gorm:"type:text" json:"test_description" form:"test_description"`
	TestRequisition string `gorm:"type:text" json:"test_requisition" form:"test_requisition"`
	TestResponse    string `gorm:"type:text" json:"test_response" form:"test_response"`
	TestSample      string `gorm:"type:text" json:"test_sample" form:"test_sample"`
	TestEvidence    string `gorm:"type:text" json:"test_evidence" form:"test_evidence"`

	Deficiency     string `gorm:"type:text" json:"deficiency"`
	Recommendation string `gorm:"type:text" json:"recommendation"`

	// Sub-registro de plano de ação corretiva
	ActionOrigin      string     `gorm:"default:''" json:"action_origin" form:"action_origin"`
	ActionOwner       string     `gorm:"default:''" json:"action_owner" form:"action_owner"`
	ActionDescription string     `gorm:"type:text" json:"action_description" form:"action_description"`
	ActionStartDate   *time.Time `json:"action_start_date" form:"action_start_date"`
	ActionDueDate     *time.Time `json:"action_due_date" form:"action_due_date"`
	ActionEndDate     *time.Time `json:"action_end_date" form:"action_end_date"`
	ActionComments    string     `gorm:"type:text" json:"action_comments" form:"action_comments"`

	SortOrder int        `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ValidCriticality aceita o enum explícito ou vazio (ainda não adjudicado).
func ValidCriticality(v string) bool {
	switch v {
	case "", CRITICALITY_BAIXA, CRITICALITY_MEDIA, CRITICALITY_ALTA:
		return true
	}
	return false
}

// ValidResponse aceita Sim/Não ou vazio (sem resposta).
func ValidResponse(v string) bool {
	switch v {
	case "", RESPONSE_SIM, RESPONSE_NAO:
		return true
	}
	return false
}
