package router

import (
	"log"

	"avalia/config"
	"avalia/controllers"
	"avalia/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public routes + authenticated
// routes + "validated" routes (Authorizer) + reviewer-only routes (Revisor).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)

	// Forms: leitura e ações do preenchedor
	validated.GET("/forms", Logger(), controllers.GetForms)
	validated.GET("/forms/:id", Logger(), controllers.GetFormByID)
	validated.POST("/forms/:id/submit", Logger(), controllers.SubmitForm)
	validated.POST("/forms/submit-all", Logger(), controllers.SubmitAllForms)
	validated.GET("/forms/:id/completeness", Logger(), controllers.FormCompleteness)

	// Árvore (leitura)
	validated.GET("/forms/:id/sections", Logger(), controllers.GetSections)
	validated.GET("/sections/:id/questions", Logger(), controllers.GetQuestions)

	// Respostas e aplicabilidade (preenchedor; regras finas nos services)
	validated.PUT("/questions/:id/answer", Logger(), controllers.RecordAnswer)
	validated.PUT("/questions/:id/applicable", Logger(), controllers.ToggleApplicable)

	// Anexos
	validated.POST("/sections/:id/attachments", Logger(), controllers.UploadSectionAttachment)
	validated.POST("/questions/:id/attachments", Logger(), controllers.UploadQuestionAttachment)
	validated.GET("/attachments/:id/file", Logger(), controllers.DownloadAttachment)

	// Relatório
	validated.POST("/forms/:id/report", Logger(), controllers.AssembleReport)

	// Reviewer routes
	reviewer := validated.Group("")
	reviewer.Use(Revisor())

	reviewer.POST("/forms", Logger(), controllers.CreateForm)
	reviewer.DELETE("/forms/:id", Logger(), controllers.DeleteForm)
	reviewer.POST("/forms/:id/assign", Logger(), controllers.AssignForm)
	reviewer.POST("/forms/:id/return", Logger(), controllers.ReturnForm)
	reviewer.POST("/forms/:id/approve", Logger(), controllers.ApproveForm)
	reviewer.POST("/forms/:id/conclude", Logger(), controllers.ConcludeForm)
	reviewer.POST("/forms/assign-all", Logger(), controllers.AssignAllForms)
	reviewer.POST("/forms/return-all", Logger(), controllers.ReturnAllForms)

	// Builder (árvore)
	reviewer.POST("/forms/:id/sections", Logger(), controllers.CreateSection)
	reviewer.PUT("/forms/:id/sections/reorder", Logger(), controllers.ReorderSections)
	reviewer.PUT("/sections/:id", Logger(), controllers.UpdateSection)
	reviewer.DELETE("/sections/:id", Logger(), controllers.DeleteSection)
	reviewer.POST("/sections/:id/questions", Logger(), controllers.CreateQuestion)
	reviewer.PUT("/sections/:id/questions/reorder", Logger(), controllers.ReorderQuestions)
	reviewer.PUT("/questions/:id", Logger(), controllers.UpdateQuestion)
	reviewer.DELETE("/questions/:id", Logger(), controllers.DeleteQuestion)
	reviewer.DELETE("/attachments/:id", Logger(), controllers.DeleteAttachment)

	log.Printf("Routes initialized")
}
