package api

import (
	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/pdf"
	"github.com/arcfolio/backend/render"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, generator *pdf.Generator, uploadsDir string) *routeHandlers {
	projector := render.NewProjector(db)

	return &routeHandlers{
		projectHandler:   newProjectHandler(db.ProjectRepo(), db.AssetRepo()),
		assetHandler:     newAssetHandler(db.AssetRepo(), db.ProjectRepo(), uploadsDir),
		cvHandler:        newCVHandler(db.CVRepo(), projector, generator),
		portfolioHandler: newPortfolioHandler(db.PortfolioRepo(), projector, generator),
		settingsHandler:  newSettingsHandler(db.SettingsRepo()),
		printHandler:     newPrintHandler(projector),
		statsHandler:     newStatsHandler(db),
	}
}
