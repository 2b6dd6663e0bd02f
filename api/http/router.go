package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unipath/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	universities *handlers.UniversityHandler,
	catalog *handlers.CatalogHandler,
	suggestions *handlers.SuggestionHandler,
	documents *handlers.DocumentHandler,
	ws *handlers.WorkspaceHandler,
	authMW fiber.Handler,
	adminMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Public catalog reads
	v1.Get("/universities", universities.List)
	v1.Get("/universities/:id", universities.GetByID)
	v1.Get("/scholarships", catalog.ListScholarships)
	v1.Get("/scholarships/:id", catalog.GetScholarship)
	v1.Get("/visas", catalog.ListVisaGuides)
	v1.Get("/visas/:id", catalog.GetVisaGuide)
	v1.Get("/exams", catalog.ListExams)
	v1.Get("/exams/:id", catalog.GetExam)

	// Catalog writes are admin-only
	v1.Post("/universities", authMW, adminMW, universities.Create)
	v1.Put("/universities/:id", authMW, adminMW, universities.Update)
	v1.Delete("/universities/:id", authMW, adminMW, universities.Delete)
	v1.Post("/scholarships", authMW, adminMW, catalog.CreateScholarship)
	v1.Put("/scholarships/:id", authMW, adminMW, catalog.UpdateScholarship)
	v1.Delete("/scholarships/:id", authMW, adminMW, catalog.DeleteScholarship)
	v1.Post("/visas", authMW, adminMW, catalog.CreateVisaGuide)
	v1.Put("/visas/:id", authMW, adminMW, catalog.UpdateVisaGuide)
	v1.Delete("/visas/:id", authMW, adminMW, catalog.DeleteVisaGuide)
	v1.Post("/exams", authMW, adminMW, catalog.CreateExam)
	v1.Put("/exams/:id", authMW, adminMW, catalog.UpdateExam)
	v1.Delete("/exams/:id", authMW, adminMW, catalog.DeleteExam)

	// University suggestions
	v1.Post("/suggestions", authMW, suggestions.Suggest)

	// Versioned document workspace
	d := v1.Group("/documents", authMW)
	d.Post("/", documents.Upload)
	d.Get("/", documents.List)
	d.Get("/:id", documents.GetByID)
	d.Delete("/:id", documents.Delete)
	d.Get("/:id/versions", documents.Versions)
	d.Post("/:id/versions", documents.AddVersion)

	// Test scores and saved universities
	v1.Put("/scores", authMW, ws.SubmitScore)
	v1.Get("/scores", authMW, ws.ListScores)
	v1.Delete("/scores/:id", authMW, ws.DeleteScore)
	v1.Get("/saved", authMW, ws.ListSaved)
	v1.Post("/saved/:universityId", authMW, ws.SaveUniversity)
	v1.Delete("/saved/:universityId", authMW, ws.UnsaveUniversity)
}
