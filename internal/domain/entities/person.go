package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"dragon-roster.backend/pkg/utils"
)

// PersonSide is the paddling side a person prefers.
type PersonSide int

const (
	PersonSideBoth  PersonSide = 0
	PersonSideLeft  PersonSide = 1
	PersonSideRight PersonSide = 2
)

func (s PersonSide) IsValid() bool {
	switch s {
	case PersonSideBoth, PersonSideLeft, PersonSideRight:
		return true
	}
	return false
}

func (s PersonSide) String() string {
	switch s {
	case PersonSideBoth:
		return "Both"
	case PersonSideLeft:
		return "Left"
	case PersonSideRight:
		return "Right"
	}
	return "Unknown"
}

// Person represents a paddler, coach or any other roster member
type Person struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Height            null.Int   `json:"height"`
	Weight            null.Int   `json:"weight"`
	Side              PersonSide `json:"side"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PersonSummary is the compact read shape embedded in other resources.
type PersonSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

func (p *Person) Summary() *PersonSummary {
	return &PersonSummary{ID: p.ID, Name: p.Name, Phone: p.Phone}
}

// PersonInput is the write payload for person create/update
type PersonInput struct {
	Name              *string       `json:"name" binding:"omitempty,max=50"`
	Phone             *string       `json:"phone" binding:"omitempty,max=15"`
	Height            Nullable[int] `json:"height"`
	Weight            Nullable[int] `json:"weight"`
	Side              *PersonSide   `json:"side"`
	ProfilePictureURL *string       `json:"profile_picture_url" binding:"omitempty,max=250"`
}

// PersonFilter narrows person listings
type PersonFilter struct {
	Side       *PersonSide
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}
