package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"dragon-roster.backend/pkg/utils"
)

type Team struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	City              null.String `json:"city"`
	MaxMembers        int         `json:"max_members"`
	ActiveMemberCount int64       `json:"active_member_count"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type TeamSummary struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	City       null.String `json:"city"`
	MaxMembers int         `json:"max_members"`
}

func (t *Team) Summary() *TeamSummary {
	return &TeamSummary{ID: t.ID, Name: t.Name, City: t.City, MaxMembers: t.MaxMembers}
}

type TeamInput struct {
	Name       *string          `json:"name" binding:"omitempty,max=255"`
	City       Nullable[string] `json:"city"`
	MaxMembers *int             `json:"max_members" binding:"omitempty,gte=0"`
}

type TeamFilter struct {
	City       *string
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}
