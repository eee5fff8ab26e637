// go-models/building.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is a managed address. Units and HostIDs are populated by the
// repositories when a full building graph is loaded.
type Building struct {
	Versioned
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"`
	Number     string    `json:"number"`
	PostalCode string    `json:"postal_code"`
	Town       string    `json:"town"`
	Country    string    `json:"country"`

	Units   []*Unit     `json:"units,omitempty"`
	HostIDs []uuid.UUID `json:"host_ids,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (b *Building) GetID() string { return b.ID.String() }

// StreetAddress joins street and number without a separator, which is the
// form used for export file names ("Storgatan12").
func (b *Building) StreetAddress() string {
	return b.Street + b.Number
}

// DisplayName is the human readable address, e.g. "Storgatan 12, 11122 Stockholm".
func (b *Building) DisplayName() string {
	name := b.Street
	if b.Number != "" {
		name += " " + b.Number
	}
	locality := b.PostalCode
	if b.Town != "" {
		if locality != "" {
			locality += " "
		}
		locality += b.Town
	}
	if locality != "" {
		name += ", " + locality
	}
	return name
}
