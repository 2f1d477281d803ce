package entities

import (
	"time"

	"github.com/google/uuid"

	"dragon-roster.backend/pkg/utils"
)

// MembershipRole is the role a person holds within a team
type MembershipRole int

const (
	MembershipRolePlayer  MembershipRole = 1
	MembershipRoleCaptain MembershipRole = 2
	MembershipRoleCoach   MembershipRole = 3
	MembershipRoleManager MembershipRole = 4
)

func (r MembershipRole) IsValid() bool {
	return r >= MembershipRolePlayer && r <= MembershipRoleManager
}

func (r MembershipRole) String() string {
	switch r {
	case MembershipRolePlayer:
		return "Player"
	case MembershipRoleCaptain:
		return "Captain"
	case MembershipRoleCoach:
		return "Coach"
	case MembershipRoleManager:
		return "Manager"
	}
	return "Unknown"
}

// Membership is the current-state link between a person and a team.
// Person and Team are populated on reads.
type Membership struct {
	ID        uuid.UUID      `json:"id"`
	PersonID  uuid.UUID      `json:"-"`
	TeamID    uuid.UUID      `json:"-"`
	Person    *PersonSummary `json:"person"`
	Team      *TeamSummary   `json:"team"`
	Role      MembershipRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type MembershipInput struct {
	Person *uuid.UUID      `json:"person"`
	Team   *uuid.UUID      `json:"team"`
	Role   *MembershipRole `json:"role"`
}

type MembershipFilter struct {
	TeamID     *uuid.UUID
	PersonID   *uuid.UUID
	Role       *MembershipRole
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}
