package models

import "time"

// FormSnapshot é o arquivo imutável gerado na conclusão de um ciclo:
// a árvore inteira serializada em JSON no momento em que o formulário
// foi concluído. A árvore viva é limpa para o próximo ciclo.
type FormSnapshot struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	FormID      int64      `gorm:"not null;index" json:"form_id"`
	Name        string     `gorm:"not null" json:"name"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ConcludedBy int64      `gorm:"not null" json:"concluded_by"`
	ConcludedAt *time.Time `json:"concluded_at"`
	CreatedAt   *time.Time `json:"created_at"`
}
