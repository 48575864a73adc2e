package models

import "time"

// Section representa um item avaliado dentro de um formulário.
// SortOrder é uma sequência densa, base 0, sem buracos: qualquer exclusão
// renumera as seções sobreviventes (ver services).
type Section struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	FormID          int64      `gorm:"not null;index" json:"form_id"`
	Item            string     `gorm:"not null" json:"item" form:"item"`
	CustomLabel     string     `gorm:"default:''" json:"custom_label" form:"custom_label"`
	HasInternalNorm bool       `gorm:"not null;default:false" json:"has_internal_norm" form:"has_internal_norm"`
	NormReference   string     `gorm:"type:text" json:"norm_reference" form:"norm_reference"`
	Description     string     `gorm:"type:text" json:"description" form:"description"`
	SortOrder       int        `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// Label devolve o rótulo exibível: o customizado quando houver, senão o código do item.
func (s Section) Label() string {
	if s.CustomLabel != "" {
		return s.CustomLabel
	}
	return s.Item
}
