package classify

import (
	"strings"

	"avalia/models"
)

/************************************************
/**** MARK: VERDICTS ****/
/************************************************/
const VERDICT_EFETIVO = "EFETIVO"
const VERDICT_PARCIALMENTE_EFETIVO = "PARCIALMENTE EFETIVO"
const VERDICT_POUCO_EFETIVO = "POUCO EFETIVO"

/************************************************
/**** MARK: COMPLIANCE DOMAINS ****/
/************************************************/
const DOMAIN_MSAC = "MSAC"
const DOMAIN_CSNU = "CSNU"
const DOMAIN_CSC = "CSC"

// Domain é uma entrada da tabela de política: o nome do domínio de
// conformidade e as palavras-chave que o identificam. A tabela é injetada
// via configuração; o algoritmo de pontuação não conhece palavra-chave
// alguma.
type Domain struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// ScoreResult é o veredito de efetividade da avaliação inteira.
type ScoreResult struct {
	DomainsHit []string `json:"domains_hit"`
	HitCount   int      `json:"hit_count"`
	Verdict    string   `json:"verdict"`
}

// DefaultPolicy devolve a tabela padrão dos três domínios fixos:
// MSAC (monitoramento/seleção/análise/comunicação de operações suspeitas),
// CSNU (triagem de listas de sanções) e CSC (conheça seu cliente).
func DefaultPolicy() []Domain {
	return []Domain{
		{Name: DOMAIN_MSAC, Keywords: []string{
			"monitoramento", "selecao", "analise de operacoes", "comunicacao de operacoes",
			"operacoes suspeitas", "operacao atipica", "atipicidade", "coaf",
		}},
		{Name: DOMAIN_CSNU, Keywords: []string{
			"csnu", "conselho de seguranca", "sancoes", "lista restritiva",
			"indisponibilidade de ativos", "resolucao do conselho",
		}},
		{Name: DOMAIN_CSC, Keywords: []string{
			"conheca seu cliente", "csc", "kyc", "cadastro de cliente",
			"identificacao do cliente", "beneficiario final", "qualificacao do cliente",
		}},
	}
}

// Score aplica a política de domínios sobre a árvore filtrada por
// aplicabilidade. Só deficiências de criticidade ALTA contam; cada uma pode
// atingir zero, um, dois ou os três domínios (os testes são independentes).
// O veredito sai do número de domínios atingidos: 0-1 EFETIVO, 2
// PARCIALMENTE EFETIVO, 3 POUCO EFETIVO. Determinístico para a mesma
// entrada: sem aleatoriedade e com a ordem dos domínios fixada pela política.
func Score(sections []Section, policy []Domain) ScoreResult {
	hit := make([]bool, len(policy))

	for _, sec := range sections {
		secContext := sec.Label + " " + sec.Description
		for _, q := range sec.Questions {
			if q.Criticality != models.CRITICALITY_ALTA || !IsDeficiency(q) {
				continue
			}
			context := Normalize(secContext + " " + q.Text + " " + q.Description + " " + q.Deficiency)
			for i, d := range policy {
				if hit[i] {
					continue
				}
				for _, kw := range d.Keywords {
					if kw == "" {
						continue
					}
					if strings.Contains(context, Normalize(kw)) {
						hit[i] = true
						break
					}
				}
			}
		}
	}

	result := ScoreResult{DomainsHit: []string{}}
	for i, d := range policy {
		if hit[i] {
			result.DomainsHit = append(result.DomainsHit, d.Name)
			result.HitCount++
		}
	}

	switch {
	case result.HitCount >= 3:
		result.Verdict = VERDICT_POUCO_EFETIVO
	case result.HitCount == 2:
		result.Verdict = VERDICT_PARCIALMENTE_EFETIVO
	default:
		result.Verdict = VERDICT_EFETIVO
	}
	return result
}
