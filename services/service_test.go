package services

import (
	"testing"

	"avalia/apperrors"
	dbpkg "avalia/db"
	"avalia/models"
	"avalia/report"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	database, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	// cada conexão do pool teria seu próprio banco em memória
	database.DB().SetMaxOpenConns(1)
	dbpkg.AutoMigrate(database)
	return New(database)
}

func seedUsers(t *testing.T, s *Service) (reviewer, filler models.User) {
	reviewer = models.User{Name: "Revisora", Email: "revisora@example.com", Password: "x", Role: models.USER_ROLE_REVIEWER}
	filler = models.User{Name: "Preenchedor", Email: "preenchedor@example.com", Password: "x", Role: models.USER_ROLE_FILLER}
	require.NoError(t, s.db.Create(&reviewer).Error)
	require.NoError(t, s.db.Create(&filler).Error)
	return reviewer, filler
}

// árvore mínima: 1 formulário, 2 seções, 3 perguntas, atribuído ao filler
func seedFormTree(t *testing.T, s *Service, reviewer, filler models.User) (*models.Form, []models.Section, []models.Question) {
	form, err := s.CreateForm(reviewer.ID, FormPayload{Name: "Ciclo 2026"})
	require.NoError(t, err)

	secA, err := s.CreateSection(form.ID, reviewer.ID, SectionPayload{Item: "1", CustomLabel: "Governança"})
	require.NoError(t, err)
	secB, err := s.CreateSection(form.ID, reviewer.ID, SectionPayload{Item: "2", CustomLabel: "Cadastro"})
	require.NoError(t, err)

	qa, err := s.CreateQuestion(secA.ID, reviewer.ID, QuestionPayload{Text: "Política aprovada?"})
	require.NoError(t, err)
	qb, err := s.CreateQuestion(secA.ID, reviewer.ID, QuestionPayload{Text: "Política revisada anualmente?"})
	require.NoError(t, err)
	qc, err := s.CreateQuestion(secB.ID, reviewer.ID, QuestionPayload{Text: "Cadastro completo?"})
	require.NoError(t, err)

	form, err = s.AssignForm(form.ID, reviewer.ID, filler.Email)
	require.NoError(t, err)

	return form, []models.Section{*secA, *secB}, []models.Question{*qa, *qb, *qc}
}

func answerSim() AnswerPayload {
	return AnswerPayload{Response: models.RESPONSE_SIM}
}

func answerNao(criticality string) AnswerPayload {
	return AnswerPayload{
		Response:       models.RESPONSE_NAO,
		Criticality:    criticality,
		Deficiency:     "controle inexistente",
		Recommendation: "implantar controle",
	}
}

/************************************************
/**** MARK: WORKFLOW LIFECYCLE ****/
/************************************************/

func TestFormLifecycle(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	assert.Equal(t, models.FORM_STATUS_ASSIGNED, form.Status)

	// primeira resposta abre o preenchimento
	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)
	form, err = s.GetForm(form.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_IN_PROGRESS, form.Status)

	// respostas seguintes não mexem no estado
	_, err = s.RecordAnswer(questions[1].ID, filler.ID, answerNao(models.CRITICALITY_ALTA))
	require.NoError(t, err)
	form, _ = s.GetForm(form.ID)
	assert.Equal(t, models.FORM_STATUS_IN_PROGRESS, form.Status)

	form, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_SUBMITTED, form.Status)

	// devolução reabre o ciclo; a primeira resposta volta a IN_PROGRESS
	form, err = s.ReturnForm(form.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_RETURNED, form.Status)

	_, err = s.RecordAnswer(questions[2].ID, filler.ID, answerSim())
	require.NoError(t, err)
	form, _ = s.GetForm(form.ID)
	assert.Equal(t, models.FORM_STATUS_IN_PROGRESS, form.Status)

	form, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)
	form, err = s.Approve(form.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_COMPLETED, form.Status)
}

func TestSubmitInvalidState(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, _ := seedFormTree(t, s, reviewer, filler)

	// ASSIGNED não é submetível
	_, err := s.Submit(form.ID, filler.ID)
	assert.Equal(t, apperrors.KIND_INVALID_STATE, apperrors.KindOf(err))

	// usuário errado é barrado antes do estado
	_, err = s.Submit(form.ID, reviewer.ID)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))
}

func TestAssignReopensCompletedForm(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)
	_, err = s.Approve(form.ID, reviewer.ID)
	require.NoError(t, err)

	other := models.User{Name: "Outro", Email: "outro@example.com", Password: "x"}
	require.NoError(t, s.db.Create(&other).Error)

	form, err = s.AssignForm(form.ID, reviewer.ID, other.Email)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_ASSIGNED, form.Status)
	assert.Equal(t, other.ID, *form.AssignedToID)
	assert.Equal(t, other.Email, form.AssignedEmail)
}

// leitura do formulário, árvore, progresso e relatório é restrita a quem
// participa: criador ou preenchedor atribuído
func TestGetFormForViewer(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, _ := seedFormTree(t, s, reviewer, filler)

	_, err := s.GetFormForViewer(form.ID, reviewer)
	assert.NoError(t, err)
	_, err = s.GetFormForViewer(form.ID, filler)
	assert.NoError(t, err)

	// outro usuário ativo (mesmo outro revisor) não enxerga o formulário
	outsider := models.User{Name: "Outra Revisora", Email: "outra@example.com", Password: "x", Role: models.USER_ROLE_REVIEWER}
	require.NoError(t, s.db.Create(&outsider).Error)
	_, err = s.GetFormForViewer(form.ID, outsider)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	_, err = s.GetFormForViewer(99999, filler)
	assert.Equal(t, apperrors.KIND_NOT_FOUND, apperrors.KindOf(err))
}

// devolver e aprovar são do criador; outro revisor é barrado
func TestReturnAndApproveRequireCreator(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	other := models.User{Name: "Outra Revisora", Email: "outra@example.com", Password: "x", Role: models.USER_ROLE_REVIEWER}
	require.NoError(t, s.db.Create(&other).Error)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)

	_, err = s.ReturnForm(form.ID, other.ID)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))
	_, err = s.Approve(form.ID, other.ID)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	// o estado não se moveu com as tentativas barradas
	form, err = s.GetForm(form.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_SUBMITTED, form.Status)

	_, err = s.Approve(form.ID, reviewer.ID)
	assert.NoError(t, err)
}

func TestAssignForbiddenAndUnknownTarget(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, _ := seedFormTree(t, s, reviewer, filler)

	_, err := s.AssignForm(form.ID, filler.ID, filler.Email)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	_, err = s.AssignForm(form.ID, reviewer.ID, "ninguem@example.com")
	assert.Equal(t, apperrors.KIND_NOT_FOUND, apperrors.KindOf(err))
}

/************************************************
/**** MARK: ANSWERS ****/
/************************************************/

func TestRecordAnswerValidation(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, _, questions := seedFormTree(t, s, reviewer, filler)
	q := questions[0].ID

	_, err := s.RecordAnswer(q, filler.ID, AnswerPayload{Response: "Talvez"})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	_, err = s.RecordAnswer(q, filler.ID, AnswerPayload{Response: models.RESPONSE_SIM, Criticality: "URGENTE"})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	// "Não" sem descrição da deficiência é rejeitado
	_, err = s.RecordAnswer(q, filler.ID, AnswerPayload{Response: models.RESPONSE_NAO, Criticality: models.CRITICALITY_ALTA})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	_, err = s.RecordAnswer(q, reviewer.ID, answerSim())
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	_, err = s.RecordAnswer(99999, filler.ID, answerSim())
	assert.Equal(t, apperrors.KIND_NOT_FOUND, apperrors.KindOf(err))
}

func TestRecordAnswerBlockedAfterSubmit(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)

	_, err = s.RecordAnswer(questions[1].ID, filler.ID, answerSim())
	assert.Equal(t, apperrors.KIND_INVALID_STATE, apperrors.KindOf(err))
}

// trocar "Não" por "Sim" limpa deficiência e recomendação gravadas
func TestRecordAnswerClearsDeficiencyOnFlip(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, _, questions := seedFormTree(t, s, reviewer, filler)
	q := questions[0].ID

	_, err := s.RecordAnswer(q, filler.ID, answerNao(models.CRITICALITY_MEDIA))
	require.NoError(t, err)
	question, err := s.GetQuestion(q)
	require.NoError(t, err)
	assert.Equal(t, "controle inexistente", question.Deficiency)

	payload := answerSim()
	payload.Deficiency = "resquício"
	payload.Recommendation = "resquício"
	answer, err := s.RecordAnswer(q, filler.ID, payload)
	require.NoError(t, err)
	assert.Empty(t, answer.Deficiency)
	assert.Empty(t, answer.Recommendation)

	question, err = s.GetQuestion(q)
	require.NoError(t, err)
	assert.Empty(t, question.Deficiency)
	assert.Empty(t, question.Recommendation)
}

// responder de novo atualiza a mesma linha, não cria outra
func TestRecordAnswerUpsertsInPlace(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, _, questions := seedFormTree(t, s, reviewer, filler)
	q := questions[0].ID

	_, err := s.RecordAnswer(q, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.RecordAnswer(q, filler.ID, answerNao(models.CRITICALITY_BAIXA))
	require.NoError(t, err)

	var count int
	s.db.Model(&models.Answer{}).Where("question_id = ?", q).Count(&count)
	assert.Equal(t, 1, count)
}

/************************************************
/**** MARK: ORDERING ****/
/************************************************/

func sortOrders(t *testing.T, s *Service, formID int64) []int {
	sections, err := s.ListSections(formID)
	require.NoError(t, err)
	orders := make([]int, 0, len(sections))
	for _, sec := range sections {
		orders = append(orders, sec.SortOrder)
	}
	return orders
}

func TestSectionOrderDenseAfterDelete(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, _ := seedFormTree(t, s, reviewer, filler)

	secC, err := s.CreateSection(form.ID, reviewer.ID, SectionPayload{Item: "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, secC.SortOrder)
	assert.Equal(t, []int{0, 1, 2}, sortOrders(t, s, form.ID))

	// remover a do meio fecha o buraco
	sections, _ := s.ListSections(form.ID)
	require.NoError(t, s.DeleteSection(sections[1].ID, reviewer.ID))
	assert.Equal(t, []int{0, 1}, sortOrders(t, s, form.ID))
}

func TestReorderSections(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, sections, _ := seedFormTree(t, s, reviewer, filler)

	require.NoError(t, s.ReorderSections(form.ID, []int64{sections[1].ID, sections[0].ID}))
	after, err := s.ListSections(form.ID)
	require.NoError(t, err)
	assert.Equal(t, sections[1].ID, after[0].ID)
	assert.Equal(t, sections[0].ID, after[1].ID)
	assert.Equal(t, []int{0, 1}, sortOrders(t, s, form.ID))

	// permutação incompleta
	err = s.ReorderSections(form.ID, []int64{sections[0].ID})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	// id estranho
	err = s.ReorderSections(form.ID, []int64{sections[0].ID, 99999})
	assert.Equal(t, apperrors.KIND_NOT_FOUND, apperrors.KindOf(err))
}

// lista com id repetido tem o tamanho certo e só ids existentes, mas gravaria
// sort_order duplicado e deixaria uma irmã de fora
func TestReorderSectionsRejectsDuplicateIDs(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, sections, _ := seedFormTree(t, s, reviewer, filler)

	err := s.ReorderSections(form.ID, []int64{sections[0].ID, sections[0].ID})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	// nada foi gravado: a sequência continua densa e na ordem original
	after, err := s.ListSections(form.ID)
	require.NoError(t, err)
	assert.Equal(t, sections[0].ID, after[0].ID)
	assert.Equal(t, sections[1].ID, after[1].ID)
	assert.Equal(t, []int{0, 1}, sortOrders(t, s, form.ID))
}

func TestReorderQuestionsRejectsDuplicateIDs(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, sections, questions := seedFormTree(t, s, reviewer, filler)

	err := s.ReorderQuestions(sections[0].ID, []int64{questions[0].ID, questions[0].ID})
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))

	after, err := s.ListQuestions(sections[0].ID)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, 0, after[0].SortOrder)
	assert.Equal(t, 1, after[1].SortOrder)
}

func TestQuestionOrderDenseAfterDelete(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, sections, questions := seedFormTree(t, s, reviewer, filler)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)

	// seção A tem as perguntas 0 e 1
	require.NoError(t, s.DeleteQuestion(questions[0].ID, reviewer.ID))
	remaining, err := s.ListQuestions(sections[0].ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 0, remaining[0].SortOrder)

	// cascata: respostas da pergunta excluída saem junto
	var count int
	s.db.Model(&models.Answer{}).Where("question_id = ?", questions[0].ID).Count(&count)
	assert.Equal(t, 0, count)
}

func TestReorderQuestions(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, sections, questions := seedFormTree(t, s, reviewer, filler)

	require.NoError(t, s.ReorderQuestions(sections[0].ID, []int64{questions[1].ID, questions[0].ID}))
	after, err := s.ListQuestions(sections[0].ID)
	require.NoError(t, err)
	assert.Equal(t, questions[1].ID, after[0].ID)
	assert.Equal(t, 0, after[0].SortOrder)
	assert.Equal(t, 1, after[1].SortOrder)
}

/************************************************
/**** MARK: APPLICABILITY ****/
/************************************************/

func TestToggleApplicable(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)
	q := questions[0].ID

	// preenchedor atribuído pode enquanto o formulário está aberto
	question, err := s.ToggleApplicable(q, filler.ID, false)
	require.NoError(t, err)
	assert.False(t, question.IsApplicable)

	stranger := models.User{Name: "Estranho", Email: "estranho@example.com", Password: "x"}
	require.NoError(t, s.db.Create(&stranger).Error)
	_, err = s.ToggleApplicable(q, stranger.ID, true)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	_, err = s.RecordAnswer(questions[1].ID, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)

	// depois de submetido o preenchedor perde a alavanca, o revisor não
	_, err = s.ToggleApplicable(q, filler.ID, true)
	assert.Equal(t, apperrors.KIND_INVALID_STATE, apperrors.KindOf(err))

	question, err = s.ToggleApplicable(q, reviewer.ID, true)
	require.NoError(t, err)
	assert.True(t, question.IsApplicable)
}

/************************************************
/**** MARK: ATTACHMENTS ****/
/************************************************/

func TestAttachmentReplaceNotAppend(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, _, questions := seedFormTree(t, s, reviewer, filler)
	q := questions[0].ID

	meta := func(name string) AttachmentMeta {
		return AttachmentMeta{OriginalName: name, FileName: name, Path: "storage/" + name, MimeType: "application/pdf", Size: 10}
	}

	first, err := s.SaveQuestionAttachment(q, models.ATTACHMENT_CATEGORY_TEST_EVIDENCE, meta("a.pdf"))
	require.NoError(t, err)
	second, err := s.SaveQuestionAttachment(q, models.ATTACHMENT_CATEGORY_TEST_EVIDENCE, meta("b.pdf"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// mesma categoria substitui; categoria diferente convive
	_, err = s.SaveQuestionAttachment(q, models.ATTACHMENT_CATEGORY_RESPOSTA, meta("c.pdf"))
	require.NoError(t, err)

	atts, err := s.ListQuestionAttachments(q)
	require.NoError(t, err)
	require.Len(t, atts, 2)
	names := []string{atts[0].OriginalName, atts[1].OriginalName}
	assert.Contains(t, names, "b.pdf")
	assert.Contains(t, names, "c.pdf")
	assert.NotContains(t, names, "a.pdf")
}

func TestAttachmentCategoryRules(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	_, sections, questions := seedFormTree(t, s, reviewer, filler)

	meta := AttachmentMeta{OriginalName: "n.pdf", FileName: "n.pdf", Path: "storage/n.pdf"}

	// seção só aceita NORMA
	_, err := s.SaveSectionAttachment(sections[0].ID, models.ATTACHMENT_CATEGORY_RESPOSTA, meta)
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))
	_, err = s.SaveSectionAttachment(sections[0].ID, models.ATTACHMENT_CATEGORY_NORMA, meta)
	require.NoError(t, err)

	// pergunta aceita tudo menos NORMA
	_, err = s.SaveQuestionAttachment(questions[0].ID, models.ATTACHMENT_CATEGORY_NORMA, meta)
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))
	_, err = s.SaveQuestionAttachment(questions[0].ID, "RASCUNHO", meta)
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))
}

/************************************************
/**** MARK: BULK ****/
/************************************************/

func TestSubmitAllMixedResults(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	formA, _, questionsA := seedFormTree(t, s, reviewer, filler)
	formB, _, _ := seedFormTree(t, s, reviewer, filler)

	// só o A está em condição de submeter
	_, err := s.RecordAnswer(questionsA[0].ID, filler.ID, answerSim())
	require.NoError(t, err)

	results := s.SubmitAll([]int64{formA.ID, formB.ID, 99999}, filler.ID)
	require.Len(t, results, 3)

	assert.Equal(t, formA.ID, results[0].ID)
	assert.True(t, results[0].OK)

	assert.False(t, results[1].OK)
	require.NotNil(t, results[1].Error)
	assert.Equal(t, apperrors.KIND_INVALID_STATE, results[1].Error.Kind)

	assert.False(t, results[2].OK)
	require.NotNil(t, results[2].Error)
	assert.Equal(t, apperrors.KIND_NOT_FOUND, results[2].Error.Kind)

	// a falha de um não desfaz o sucesso do outro
	formA, err = s.GetForm(formA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORM_STATUS_SUBMITTED, formA.Status)
}

/************************************************
/**** MARK: REPORTS ****/
/************************************************/

func reportOptions(typ string) report.Options {
	return report.Options{Type: typ, Privileged: true, ShowEffectiveness: false}
}

func TestAssembleReportFullRequiresCompleteness(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerNao(models.CRITICALITY_ALTA))
	require.NoError(t, err)

	_, err = s.AssembleReport(form.ID, reportOptions(report.REPORT_TYPE_FULL))
	assert.Equal(t, apperrors.KIND_INCOMPLETE_ASSESSMENT, apperrors.KindOf(err))

	// PARTIAL monta com o que houver
	doc, err := s.AssembleReport(form.ID, reportOptions(report.REPORT_TYPE_PARTIAL))
	require.NoError(t, err)
	require.Len(t, doc.Execution, 2)

	// completando as respostas o FULL passa a montar
	_, err = s.RecordAnswer(questions[1].ID, filler.ID, answerSim())
	require.NoError(t, err)
	_, err = s.RecordAnswer(questions[2].ID, filler.ID, answerNao(models.CRITICALITY_MEDIA))
	require.NoError(t, err)

	doc, err = s.AssembleReport(form.ID, reportOptions(report.REPORT_TYPE_FULL))
	require.NoError(t, err)

	total := doc.Conclusion[len(doc.Conclusion)-1]
	assert.True(t, total.IsTotal)
	assert.Equal(t, 2, total.Total)
	assert.Equal(t, 1, total.Alta)
	assert.Equal(t, 1, total.Media)
}

func TestAssembleReportRejectsUnknownType(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, _ := seedFormTree(t, s, reviewer, filler)

	_, err := s.AssembleReport(form.ID, reportOptions("RESUMO"))
	assert.Equal(t, apperrors.KIND_VALIDATION_FAILED, apperrors.KindOf(err))
}

func TestCompletenessCountsApplicableOnly(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	answered, applicable, err := s.Completeness(form.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, answered)
	assert.Equal(t, 3, applicable)

	_, err = s.ToggleApplicable(questions[2].ID, reviewer.ID, false)
	require.NoError(t, err)
	_, err = s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)

	answered, applicable, err = s.Completeness(form.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, answered)
	assert.Equal(t, 2, applicable)
}

/************************************************
/**** MARK: CONCLUDE ****/
/************************************************/

func TestConclude(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	// fora de COMPLETED não conclui
	_, err := s.Conclude(form.ID, reviewer.ID)
	assert.Equal(t, apperrors.KIND_INVALID_STATE, apperrors.KindOf(err))

	for _, q := range questions {
		_, err = s.RecordAnswer(q.ID, filler.ID, answerSim())
		require.NoError(t, err)
	}
	_, err = s.Submit(form.ID, filler.ID)
	require.NoError(t, err)
	_, err = s.Approve(form.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = s.Conclude(form.ID, filler.ID)
	assert.Equal(t, apperrors.KIND_FORBIDDEN, apperrors.KindOf(err))

	snapshot, err := s.Conclude(form.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, snapshot.FormID)
	assert.Equal(t, reviewer.ID, snapshot.ConcludedBy)
	assert.NotEmpty(t, snapshot.Content)

	// a árvore viva foi limpa e a atribuição zerada
	sections, err := s.ListSections(form.ID)
	require.NoError(t, err)
	assert.Empty(t, sections)

	form, err = s.GetForm(form.ID)
	require.NoError(t, err)
	assert.Nil(t, form.AssignedToID)
	assert.Empty(t, form.AssignedEmail)
}

func TestDeleteFormCascades(t *testing.T) {
	s := newTestService(t)
	reviewer, filler := seedUsers(t, s)
	form, _, questions := seedFormTree(t, s, reviewer, filler)

	_, err := s.RecordAnswer(questions[0].ID, filler.ID, answerSim())
	require.NoError(t, err)

	require.NoError(t, s.DeleteForm(form.ID, reviewer.ID))

	_, err = s.GetForm(form.ID)
	assert.Equal(t, apperrors.KIND_NOT_FOUND, apperrors.KindOf(err))

	var count int
	s.db.Model(&models.Question{}).Count(&count)
	assert.Equal(t, 0, count)
	s.db.Model(&models.Answer{}).Count(&count)
	assert.Equal(t, 0, count)
}
