package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler   projectHandler
	assetHandler     assetHandler
	cvHandler        cvHandler
	portfolioHandler portfolioHandler
	settingsHandler  settingsHandler
	printHandler     printHandler
	statsHandler     statsHandler
}
