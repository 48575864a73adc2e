package controllers

import (
	"net/http"
	"time"

	"avalia/report"
	"avalia/tools"

	"github.com/gin-gonic/gin"
)

type ReportPayload struct {
	Type                   string   `json:"type" form:"type"`
	Year                   int      `json:"year" form:"year"`
	Institutions           []string `json:"institutions" form:"institutions"`
	Qualification          string   `json:"qualification" form:"qualification"`
	IncludeRecommendations bool     `json:"include_recommendations" form:"include_recommendations"`
	ShowEffectiveness      bool     `json:"show_effectiveness" form:"show_effectiveness"`
}

// POST /api/forms/:id/report
// Devolve o modelo de documento; quem transforma em PDF/planilha são os
// renderizadores, fora deste serviço.
func AssembleReport(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	formID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var payload ReportPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Year != 0 && !tools.ValidateYear(payload.Year, cfg.Report.MinimumYear) {
		RespondError(c, "ano de referência abaixo do mínimo permitido", http.StatusBadRequest)
		return
	}

	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if _, err := svc.GetFormForViewer(formID, user); err != nil {
		RespondServiceError(c, err)
		return
	}

	opts := report.Options{
		Type:                   payload.Type,
		Institutions:           payload.Institutions,
		Qualification:          payload.Qualification,
		IncludeRecommendations: payload.IncludeRecommendations,
		ShowEffectiveness:      payload.ShowEffectiveness,
		Privileged:             user.IsReviewer(),
		AsOf:                   time.Now(),
		IntroBoilerplate:       cfg.Report.IntroBoilerplate,
		MethodologyBoilerplate: cfg.Report.MethodologyBoilerplate,
		VerdictCopy:            cfg.Report.VerdictCopy,
		Policy:                 cfg.Domains,
	}

	doc, err := svc.AssembleReport(formID, opts)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"document": doc})
}

// GET /api/forms/:id/completeness
func FormCompleteness(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	formID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	svc := serviceFor(c)
	if svc == nil {
		return
	}
	if _, err := svc.GetFormForViewer(formID, user); err != nil {
		RespondServiceError(c, err)
		return
	}
	answered, applicable, err := svc.Completeness(formID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"answered": answered, "applicable": applicable})
}
