package entities

import (
	"time"

	"github.com/google/uuid"

	"dragon-roster.backend/pkg/utils"
)

// Training is a scheduled session of a team at one of its locations
type Training struct {
	ID         int64            `json:"id"`
	TeamID     uuid.UUID        `json:"-"`
	LocationID int64            `json:"-"`
	Team       *TeamSummary     `json:"team"`
	Location   *LocationSummary `json:"location"`
	StartAt    time.Time        `json:"start_at"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type TrainingInput struct {
	Team     *uuid.UUID `json:"team"`
	Location *int64     `json:"location"`
	StartAt  *time.Time `json:"start_at"`
}

type TrainingFilter struct {
	TeamID     *uuid.UUID
	LocationID *int64
	StartAtGTE *time.Time
	StartAtLTE *time.Time
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}
