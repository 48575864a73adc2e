package report

import (
	"fmt"

	"avalia/apperrors"
	"avalia/classify"
	"avalia/models"
)

// NoDeficiencyText é a linha explícita emitida quando a seção não tem
// nenhuma deficiência; a lista de achados nunca sai vazia e muda.
const NoDeficiencyText = "Nenhuma deficiência identificada."

// Assemble produz o modelo de documento a partir da árvore resolvida.
// Tudo ou nada: qualquer falha aborta antes de qualquer parte ser emitida.
// Autorização é problema do chamador; aqui só entra árvore já liberada.
func Assemble(tree Tree, opts Options) (*DocumentModel, error) {
	if err := validate(tree); err != nil {
		return nil, err
	}

	doc := &DocumentModel{
		Introduction: Introduction{
			Boilerplate:  opts.IntroBoilerplate,
			Institutions: opts.Institutions,
			AsOf:         opts.AsOf,
		},
		Qualification: opts.Qualification,
	}

	// Metodologia: rótulos das seções avaliadas, prefixados por ordinal.
	doc.Methodology.Boilerplate = opts.MethodologyBoilerplate
	for i, node := range tree.Sections {
		doc.Methodology.Items = append(doc.Methodology.Items,
			fmt.Sprintf("%d. %s", i+1, node.Section.Label()))
	}

	for _, node := range tree.Sections {
		doc.Execution = append(doc.Execution, buildExecution(node, opts))
	}

	views := sectionViews(tree)
	doc.Conclusion = classify.Aggregate(views)

	if opts.ShowEffectiveness {
		score := classify.Score(views, opts.Policy)
		doc.Effectiveness = &EffectivenessBlock{
			Verdict:     score.Verdict,
			Explanation: opts.VerdictCopy[score.Verdict],
			DomainsHit:  score.DomainsHit,
		}
	}

	for _, node := range tree.Sections {
		doc.Annex = append(doc.Annex, buildAnnexRow(node))
	}

	return doc, nil
}

// Completeness conta perguntas aplicáveis e quantas delas têm resposta.
// Relatório FULL exige 100%; o chamador decide com IncompleteAssessment.
func Completeness(tree Tree) (answered, applicable int) {
	for _, node := range tree.Sections {
		for _, qn := range node.Questions {
			if !qn.Question.IsApplicable {
				continue
			}
			applicable++
			if qn.Question.Response != "" {
				answered++
			}
		}
	}
	return answered, applicable
}

func validate(tree Tree) error {
	if tree.Form.ID == 0 {
		return apperrors.InvalidContent("form", 0, "formulário ausente")
	}
	seen := map[int]bool{}
	for _, node := range tree.Sections {
		if node.Section.FormID != tree.Form.ID {
			return apperrors.InvalidContent("form", tree.Form.ID,
				fmt.Sprintf("seção %d não pertence ao formulário", node.Section.ID))
		}
		if seen[node.Section.SortOrder] {
			return apperrors.InvalidContent("form", tree.Form.ID,
				fmt.Sprintf("ordem duplicada na seção %d", node.Section.ID))
		}
		seen[node.Section.SortOrder] = true
		for _, qn := range node.Questions {
			if qn.Question.SectionID != node.Section.ID {
				return apperrors.InvalidContent("form", tree.Form.ID,
					fmt.Sprintf("pergunta %d não pertence à seção %d", qn.Question.ID, node.Section.ID))
			}
			if qn.Question.Text == "" {
				return apperrors.InvalidContent("form", tree.Form.ID,
					fmt.Sprintf("pergunta %d sem enunciado", qn.Question.ID))
			}
		}
	}
	return nil
}

func buildExecution(node SectionNode, opts Options) SectionExecution {
	exec := SectionExecution{
		Item:  node.Section.Item,
		Label: node.Section.Label(),
	}
	if opts.Privileged {
		exec.Description = node.Section.Description
	}

	for _, qn := range node.Questions {
		q := qn.Question
		if !q.IsApplicable {
			continue
		}
		card := QuestionCard{
			Text:            q.Text,
			TestStatus:      q.TestStatus,
			TestDescription: q.TestDescription,
			References:      testReferences(qn.Attachments),
		}
		exec.Cards = append(exec.Cards, card)

		if classify.IsDeficiency(q) {
			finding := Finding{
				Label:       findingLabel(q),
				Criticality: q.Criticality,
			}
			if opts.IncludeRecommendations {
				finding.Recommendation = q.Recommendation
			}
			exec.Findings = append(exec.Findings, finding)
		}
	}

	if len(exec.Findings) == 0 {
		exec.NoDeficiencyText = NoDeficiencyText
	}
	return exec
}

func findingLabel(q models.Question) string {
	if q.Deficiency != "" {
		return q.Deficiency
	}
	return q.Text
}

// testReferences agrupa os anexos da pergunta pelas quatro categorias de
// referência de teste, na ordem fixa, deduplicando por (categoria, path).
func testReferences(attachments []models.Attachment) []AttachmentRef {
	var refs []AttachmentRef
	seen := map[string]bool{}
	for _, category := range models.TestReferenceCategories {
		for _, a := range attachments {
			if a.Category != category {
				continue
			}
			key := a.Category + "|" + a.Path
			if seen[key] {
				continue
			}
			seen[key] = true
			refs = append(refs, attachmentRef(a))
		}
	}
	return refs
}

// buildAnnexRow lista todo anexo alcançável pela seção ou por suas
// perguntas, deduplicado por (categoria, path, nome original, nome gravado).
func buildAnnexRow(node SectionNode) AnnexRow {
	row := AnnexRow{Item: node.Section.Item, Label: node.Section.Label()}
	seen := map[string]bool{}

	add := func(a models.Attachment) {
		key := a.Category + "|" + a.Path + "|" + a.OriginalName + "|" + a.FileName
		if seen[key] {
			return
		}
		seen[key] = true
		row.Files = append(row.Files, attachmentRef(a))
	}

	for _, a := range node.Attachments {
		add(a)
	}
	for _, qn := range node.Questions {
		for _, a := range qn.Attachments {
			add(a)
		}
	}
	return row
}

func attachmentRef(a models.Attachment) AttachmentRef {
	return AttachmentRef{
		Category:     a.Category,
		Path:         a.Path,
		OriginalName: a.OriginalName,
		FileName:     a.FileName,
		Reference:    a.Reference,
	}
}

func sectionViews(tree Tree) []classify.Section {
	views := make([]classify.Section, 0, len(tree.Sections))
	for _, node := range tree.Sections {
		view := classify.Section{
			Item:        node.Section.Item,
			Label:       node.Section.Label(),
			Description: node.Section.Description,
		}
		for _, qn := range node.Questions {
			view.Questions = append(view.Questions, qn.Question)
		}
		views = append(views, view)
	}
	return views
}
