package dtos

import (
	"github.com/google/uuid"
)

// BuildingPathParams is the {id} segment of the building routes.
type BuildingPathParams struct {
	ID string `validate:"required,uuid"`
}

type UnitResponse struct {
	ID          uuid.UUID `json:"id"`
	UnitNumber  string    `json:"unit_number"`
	EntryCode   string    `json:"entry_code"`
	TenantNames string    `json:"tenant_names"`
	Residents   int       `json:"resident_count"`
}

type FloorResponse struct {
	Floor int            `json:"floor"`
	Units []UnitResponse `json:"units"`
}

// BuildingResponse lists floors from the top down, like the printed roster.
type BuildingResponse struct {
	ID          uuid.UUID       `json:"id"`
	DisplayName string          `json:"display_name"`
	Street      string          `json:"street"`
	Number      string          `json:"number"`
	PostalCode  string          `json:"postal_code"`
	Town        string          `json:"town"`
	Country     string          `json:"country"`
	HostIDs     []uuid.UUID     `json:"host_ids"`
	Floors      []FloorResponse `json:"floors"`
}
