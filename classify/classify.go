package classify

import "avalia/models"

// Section é a visão que o motor de classificação recebe de uma seção já
// resolvida: rótulo, descrição e as perguntas, na ordem de exibição.
type Section struct {
	Item        string
	Label       string
	Description string
	Questions   []models.Question
}

// AggregateRow é uma linha da tabela de conclusão: deficiências da seção
// divididas por criticidade, mais o total da linha.
type AggregateRow struct {
	Item    string `json:"item"`
	Label   string `json:"label"`
	Baixa   int    `json:"baixa"`
	Media   int    `json:"media"`
	Alta    int    `json:"alta"`
	Total   int    `json:"total"`
	IsTotal bool   `json:"is_total"`
}

// IsNo diz se a resposta normalizada equivale a "não".
func IsNo(response string) bool {
	n := Normalize(response)
	return n == "nao" || n == "n"
}

// IsYes diz se a resposta normalizada equivale a "sim".
func IsYes(response string) bool {
	n := Normalize(response)
	return n == "sim" || n == "s"
}

// IsDeficiency diz se a pergunta conta como deficiência: resposta "Não",
// criticidade explicitamente definida e pergunta aplicável. Criticidade em
// branco significa "ainda não adjudicado", nunca BAIXA.
func IsDeficiency(q models.Question) bool {
	if !q.IsApplicable {
		return false
	}
	if !IsNo(q.Response) {
		return false
	}
	switch q.Criticality {
	case models.CRITICALITY_BAIXA, models.CRITICALITY_MEDIA, models.CRITICALITY_ALTA:
		return true
	}
	return false
}

// Aggregate monta a fonte de dados da tabela de conclusão: uma linha por
// seção, na ordem recebida (ordem de exibição), e uma linha TOTAL ao final
// somando todas as seções.
func Aggregate(sections []Section) []AggregateRow {
	rows := make([]AggregateRow, 0, len(sections)+1)
	total := AggregateRow{Label: "TOTAL", IsTotal: true}

	for _, sec := range sections {
		row := AggregateRow{Item: sec.Item, Label: sec.Label}
		for _, q := range sec.Questions {
			if !IsDeficiency(q) {
				continue
			}
			switch q.Criticality {
			case models.CRITICALITY_BAIXA:
				row.Baixa++
			case models.CRITICALITY_MEDIA:
				row.Media++
			case models.CRITICALITY_ALTA:
				row.Alta++
			}
			row.Total++
		}
		total.Baixa += row.Baixa
		total.Media += row.Media
		total.Alta += row.Alta
		total.Total += row.Total
		rows = append(rows, row)
	}

	return append(rows, total)
}
