package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes wires the JSON API, the static uploads file server and the
// print surface the PDF pipeline renders from.
func setupRoutes(r chi.Router, handlers *routeHandlers, uploadsDir string, startupTime time.Time) {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		responder.WriteData(w, http.StatusOK, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api", func(r chi.Router) {
			// Project endpoints
			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Get("/projects/{projectID}/assets", handlers.projectHandler.getProjectAssets())

			// Asset endpoints
			r.Post("/assets/upload/{projectID}", handlers.assetHandler.uploadAsset())
			r.Post("/assets/upload-multiple/{projectID}", handlers.assetHandler.uploadMultipleAssets())
			r.Post("/assets/reorder", handlers.assetHandler.reorderAssets())
			r.Get("/assets/{assetID}", handlers.assetHandler.getAsset())
			r.Put("/assets/{assetID}", handlers.assetHandler.updateAsset())
			r.Delete("/assets/{assetID}", handlers.assetHandler.deleteAsset())
			r.Post("/assets/{assetID}/set-hero", handlers.assetHandler.setHeroAsset())

			// CV endpoints
			r.Get("/cv/personal-info", handlers.cvHandler.getPersonalInfo())
			r.Put("/cv/personal-info", handlers.cvHandler.updatePersonalInfo())
			r.Get("/cv/experience", handlers.cvHandler.getExperiences())
			r.Post("/cv/experience", handlers.cvHandler.createExperience())
			r.Put("/cv/experience/{experienceID}", handlers.cvHandler.updateExperience())
			r.Delete("/cv/experience/{experienceID}", handlers.cvHandler.deleteExperience())
			r.Get("/cv/education", handlers.cvHandler.getEducation())
			r.Post("/cv/education", handlers.cvHandler.createEducation())
			r.Put("/cv/education/{educationID}", handlers.cvHandler.updateEducation())
			r.Delete("/cv/education/{educationID}", handlers.cvHandler.deleteEducation())
			r.Get("/cv/skills", handlers.cvHandler.getSkills())
			r.Post("/cv/skills", handlers.cvHandler.createSkill())
			r.Put("/cv/skills/{skillID}", handlers.cvHandler.updateSkill())
			r.Delete("/cv/skills/{skillID}", handlers.cvHandler.deleteSkill())
			r.Get("/cv/all", handlers.cvHandler.getAll())
			r.Get("/cv/renderable", handlers.cvHandler.getRenderable())
			r.Post("/cv/generate", handlers.cvHandler.generatePDF())

			// Portfolio endpoints
			r.Get("/portfolios", handlers.portfolioHandler.getAllPortfolios())
			r.Post("/portfolios", handlers.portfolioHandler.createPortfolio())
			r.Get("/portfolios/{portfolioID}", handlers.portfolioHandler.getPortfolio())
			r.Put("/portfolios/{portfolioID}", handlers.portfolioHandler.updatePortfolio())
			r.Delete("/portfolios/{portfolioID}", handlers.portfolioHandler.deletePortfolio())
			r.Get("/portfolios/{portfolioID}/renderable", handlers.portfolioHandler.getRenderable())
			r.Post("/portfolios/{portfolioID}/generate", handlers.portfolioHandler.generatePDF())

			// Settings endpoints
			r.Get("/settings", handlers.settingsHandler.getSettings())
			r.Put("/settings", handlers.settingsHandler.updateSettings())

			// Database stats for the dashboard
			r.Get("/stats", handlers.statsHandler.getStats())
		})

		// Print surface: the PDF exporter points headless Chrome here, so the
		// exported document and the preview share one layout path.
		r.Get("/print/portfolio/{portfolioID}", handlers.printHandler.printPortfolio())
		r.Get("/print/cv", handlers.printHandler.printCV())
	})

	// Static uploads (asset originals, optimized images, generated PDFs)
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})
}
