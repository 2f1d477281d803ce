package entities

import (
	"time"

	"github.com/google/uuid"

	"dragon-roster.backend/pkg/utils"
)

// Location is a training venue owned by a team
type Location struct {
	ID        int64        `json:"id"`
	TeamID    uuid.UUID    `json:"-"`
	Team      *TeamSummary `json:"team"`
	Name      string       `json:"name"`
	Lat       float64      `json:"lat"`
	Lon       float64      `json:"lon"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type LocationSummary struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (l *Location) Summary() *LocationSummary {
	return &LocationSummary{ID: l.ID, Name: l.Name, Lat: l.Lat, Lon: l.Lon}
}

type LocationInput struct {
	Team *uuid.UUID `json:"team"`
	Name *string    `json:"name" binding:"omitempty,max=255"`
	Lat  *float64   `json:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lon  *float64   `json:"lon" binding:"omitempty,gte=-180,lte=180"`
}

type LocationFilter struct {
	TeamID     *uuid.UUID
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}
