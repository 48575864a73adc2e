package models

import "time"

// Answer é a resposta de um preenchedor a uma pergunta, com escopo
// (question, filler): responder duas vezes atualiza no lugar, não duplica.
type Answer struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	QuestionID     int64      `gorm:"not null;unique_index:idx_answer_question_filler" json:"question_id"`
	FillerID       int64      `gorm:"not null;unique_index:idx_answer_question_filler" json:"filler_id"`
	Response       string     `gorm:"default:''" json:"response" form:"response"`
	Criticality    string     `gorm:"default:''" json:"criticality" form:"criticality"`
	Deficiency     string     `gorm:"type:text" json:"deficiency" form:"deficiency"`
	Recommendation string     `gorm:"type:text" json:"recommendation" form:"recommendation"`
	Comments       string     `gorm:"type:text" json:"comments" form:"comments"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
