package report

import (
	"time"

	"avalia/classify"
	"avalia/models"
)

/************************************************
/**** MARK: REPORT TYPES ****/
/************************************************/
const REPORT_TYPE_FULL = "FULL"
const REPORT_TYPE_PARTIAL = "PARTIAL"

// Tree é a árvore resolvida de um formulário: tudo que o montador precisa,
// já carregado pela camada de storage. O montador não consulta banco.
type Tree struct {
	Form     models.Form
	Sections []SectionNode
}

type SectionNode struct {
	Section     models.Section
	Questions   []QuestionNode
	Attachments []models.Attachment
}

type QuestionNode struct {
	Question    models.Question
	Attachments []models.Attachment
}

// Options controla a montagem. VerdictCopy traz a frase explicativa fixa de
// cada veredito (texto fornecido de fora, nunca computado aqui).
type Options struct {
	Type                   string
	Institutions           []string
	Qualification          string
	IncludeRecommendations bool
	ShowEffectiveness      bool
	Privileged             bool
	AsOf                   time.Time
	IntroBoilerplate       string
	MethodologyBoilerplate string
	VerdictCopy            map[string]string
	Policy                 []classify.Domain
}

// DocumentModel é o modelo de documento agnóstico de renderização, na ordem
// obrigatória das partes. Os dois renderizadores (fluxo paginado e tabela de
// layout fixo) consomem este modelo; nenhum detalhe visual mora aqui.
type DocumentModel struct {
	Introduction  Introduction            `json:"introduction"`
	Methodology   Methodology             `json:"methodology"`
	Qualification string                  `json:"qualification"`
	Execution     []SectionExecution      `json:"execution"`
	Conclusion    []classify.AggregateRow `json:"conclusion"`
	Effectiveness *EffectivenessBlock     `json:"effectiveness,omitempty"`
	Annex         []AnnexRow              `json:"annex"`
}

type Introduction struct {
	Boilerplate  string    `json:"boilerplate"`
	Institutions []string  `json:"institutions"`
	AsOf         time.Time `json:"as_of"`
}

type Methodology struct {
	Boilerplate string   `json:"boilerplate"`
	Items       []string `json:"items"`
}

type SectionExecution struct {
	Item        string         `json:"item"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Cards       []QuestionCard `json:"cards"`
	Findings    []Finding      `json:"findings"`
	// NoDeficiencyText substitui a lista de achados quando ela é vazia;
	// a seção nunca sai com lista vazia e silêncio.
	NoDeficiencyText string `json:"no_deficiency_text,omitempty"`
}

type QuestionCard struct {
	Text            string          `json:"text"`
	TestStatus      string          `json:"test_status"`
	TestDescription string          `json:"test_description"`
	References      []AttachmentRef `json:"references"`
}

type AttachmentRef struct {
	Category     string `json:"category"`
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	FileName     string `json:"file_name"`
	Reference    string `json:"reference,omitempty"`
}

type Finding struct {
	Label          string `json:"label"`
	Criticality    string `json:"criticality"`
	Recommendation string `json:"recommendation,omitempty"`
}

type EffectivenessBlock struct {
	Verdict     string   `json:"verdict"`
	Explanation string   `json:"explanation"`
	DomainsHit  []string `json:"domains_hit"`
}

type AnnexRow struct {
	Item  string          `json:"item"`
	Label string          `json:"label"`
	Files []AttachmentRef `json:"files"`
}
