package models

import "time"

/************************************************
/**** MARK: ATTACHMENT CATEGORIES ****/
/************************************************/
const ATTACHMENT_CATEGORY_NORMA = "NORMA"
const ATTACHMENT_CATEGORY_TEMPLATE = "TEMPLATE"
const ATTACHMENT_CATEGORY_RESPOSTA = "RESPOSTA"
const ATTACHMENT_CATEGORY_DEFICIENCIA = "DEFICIENCIA"
const ATTACHMENT_CATEGORY_TEST_REQUISITION = "TEST_REQUISITION"
const ATTACHMENT_CATEGORY_TEST_RESPONSE = "TEST_RESPONSE"
const ATTACHMENT_CATEGORY_TEST_SAMPLE = "TEST_SAMPLE"
const ATTACHMENT_CATEGORY_TEST_EVIDENCE = "TEST_EVIDENCE"

// TestReferenceCategories são as quatro categorias de referência de teste,
// na ordem em que o relatório as agrupa.
var TestReferenceCategories = []string{
	ATTACHMENT_CATEGORY_TEST_REQUISITION,
	ATTACHMENT_CATEGORY_TEST_RESPONSE,
	ATTACHMENT_CATEGORY_TEST_SAMPLE,
	ATTACHMENT_CATEGORY_TEST_EVIDENCE,
}

// Attachment pertence a exatamente uma seção OU uma pergunta, nunca às duas.
// Vale no máximo um anexo por (dono, categoria): subir outro da mesma
// categoria substitui o anterior (delete + create, ver services).
type Attachment struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	SectionID    *int64     `gorm:"index" json:"section_id"`
	QuestionID   *int64     `gorm:"index" json:"question_id"`
	Category     string     `gorm:"not null;index" json:"category" form:"category"`
	OriginalName string     `gorm:"not null" json:"original_name"`
	FileName     string     `gorm:"not null" json:"file_name"`
	Path         string     `gorm:"not null" json:"path"`
	MimeType     string     `gorm:"default:''" json:"mime_type"`
	Size         int64      `gorm:"default:0" json:"size"`
	Reference    string     `gorm:"type:text" json:"reference" form:"reference"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func ValidAttachmentCategory(v string) bool {
	switch v {
	case ATTACHMENT_CATEGORY_NORMA, ATTACHMENT_CATEGORY_TEMPLATE,
		ATTACHMENT_CATEGORY_RESPOSTA, ATTACHMENT_CATEGORY_DEFICIENCIA,
		ATTACHMENT_CATEGORY_TEST_REQUISITION, ATTACHMENT_CATEGORY_TEST_RESPONSE,
		ATTACHMENT_CATEGORY_TEST_SAMPLE, ATTACHMENT_CATEGORY_TEST_EVIDENCE:
		return true
	}
	return false
}
