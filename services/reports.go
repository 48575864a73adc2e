package services

import (
	"avalia/apperrors"
	"avalia/report"
)

// BuildTree carrega a árvore completa do formulário na ordem de exibição:
// seções por sort_order, perguntas por sort_order, anexos de cada dono.
func (s *Service) BuildTree(formID int64) (report.Tree, error) {
	form, err := s.GetForm(formID)
	if err != nil {
		return report.Tree{}, err
	}

	tree := report.Tree{Form: *form}

	sections, err := s.ListSections(formID)
	if err != nil {
		return report.Tree{}, err
	}
	for _, section := range sections {
		node := report.SectionNode{Section: section}

		node.Attachments, err = s.ListSectionAttachments(section.ID)
		if err != nil {
			return report.Tree{}, err
		}

		questions, err := s.ListQuestions(section.ID)
		if err != nil {
			return report.Tree{}, err
		}
		for _, question := range questions {
			qn := report.QuestionNode{Question: question}
			qn.Attachments, err = s.ListQuestionAttachments(question.ID)
			if err != nil {
				return report.Tree{}, err
			}
			node.Questions = append(node.Questions, qn)
		}
		tree.Sections = append(tree.Sections, node)
	}
	return tree, nil
}

// AssembleReport monta o modelo de documento do formulário. Relatório FULL
// exige 100% das perguntas aplicáveis respondidas; PARTIAL monta com o que
// houver. Autorização é da rota; aqui só entra quem já passou por ela.
func (s *Service) AssembleReport(formID int64, opts report.Options) (*report.DocumentModel, error) {
	if opts.Type != report.REPORT_TYPE_FULL && opts.Type != report.REPORT_TYPE_PARTIAL {
		return nil, apperrors.ValidationFailed("type deve ser FULL ou PARTIAL")
	}

	tree, err := s.BuildTree(formID)
	if err != nil {
		return nil, err
	}

	if opts.Type == report.REPORT_TYPE_FULL {
		answered, applicable := report.Completeness(tree)
		if answered < applicable {
			return nil, apperrors.IncompleteAssessment("form", formID, answered, applicable)
		}
	}

	return report.Assemble(tree, opts)
}

// Completeness expõe o progresso do formulário (para a UI de acompanhamento).
func (s *Service) Completeness(formID int64) (answered, applicable int, err error) {
	tree, err := s.BuildTree(formID)
	if err != nil {
		return 0, 0, err
	}
	answered, applicable = report.Completeness(tree)
	return answered, applicable, nil
}
