package models

import "time"

/************************************************
/**** MARK: FORM STATUS ****/
/************************************************/
const FORM_STATUS_ASSIGNED = "ASSIGNED"
const FORM_STATUS_IN_PROGRESS = "IN_PROGRESS"
const FORM_STATUS_SUBMITTED = "SUBMITTED"
const FORM_STATUS_RETURNED = "RETURNED"
const FORM_STATUS_COMPLETED = "COMPLETED"

// Form representa um ciclo de autoavaliação: a coleção nomeada de seções
// e perguntas atribuída a um preenchedor, com o status do fluxo de aprovação.
// O trilho antigo de "tópico" (um único usuário, sem revisão) usa o mesmo
// registro com a flag Legacy ligada.
type Form struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name          string     `gorm:"not null" json:"name" form:"name"`
	Description   string     `gorm:"type:text" json:"description" form:"description"`
	CreatorID     int64      `gorm:"not null;index" json:"creator_id"`
	AssignedToID  *int64     `gorm:"index" json:"assigned_to_id"`
	AssignedEmail string     `gorm:"default:''" json:"assigned_email"`
	Status        string     `gorm:"not null;default:'ASSIGNED';index" json:"status"`
	Legacy        bool       `gorm:"not null;default:false" json:"legacy"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
