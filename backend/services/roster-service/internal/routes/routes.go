package routes

const (
	Health = "/health"

	Building            = "/api/v1/buildings/{id}"
	BuildingExport      = "/api/v1/buildings/{id}/export"
	BuildingSpreadsheet = "/api/v1/buildings/{id}/roster.xlsx"
)
