package entities

import (
	"time"

	"github.com/google/uuid"

	"dragon-roster.backend/pkg/utils"
)

// LineupState is the publication state of a lineup
type LineupState int

const (
	LineupStateDraft     LineupState = 1
	LineupStatePublished LineupState = 2
)

func (s LineupState) IsValid() bool {
	return s == LineupStateDraft || s == LineupStatePublished
}

func (s LineupState) String() string {
	switch s {
	case LineupStateDraft:
		return "Draft"
	case LineupStatePublished:
		return "Published"
	}
	return "Unknown"
}

// CanTransitionTo reports whether the lineup may move from s to next.
func (s LineupState) CanTransitionTo(next LineupState) bool {
	return s.IsValid() && next.IsValid()
}

// SeatSide is the boat side of a seat
type SeatSide string

const (
	SeatSideLeft  SeatSide = "L"
	SeatSideRight SeatSide = "R"
)

func (s SeatSide) IsValid() bool {
	return s == SeatSideLeft || s == SeatSideRight
}

// Lineup is the seat chart header of one training
type Lineup struct {
	ID           int64         `json:"id"`
	TrainingID   int64         `json:"-"`
	Training     *Training     `json:"training"`
	State        LineupState   `json:"state"`
	StateDisplay string        `json:"state_display"`
	Seats        []*LineupSeat `json:"seats"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// LineupSeat is one seat of a lineup; PersonID is nil for a free seat.
type LineupSeat struct {
	ID         int64          `json:"id"`
	LineupID   int64          `json:"lineup"`
	PersonID   *uuid.UUID     `json:"-"`
	Person     *PersonSummary `json:"person"`
	Side       SeatSide       `json:"side"`
	SeatNumber int            `json:"seat_number"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type LineupInput struct {
	Training *int64       `json:"training"`
	State    *LineupState `json:"state"`
}

type LineupSeatInput struct {
	Lineup     *int64              `json:"lineup"`
	Side       *SeatSide           `json:"side"`
	SeatNumber *int                `json:"seat_number"`
	Person     Nullable[uuid.UUID] `json:"person"`
}

// SeatAssignInput moves a person onto a seat; a null person frees it.
type SeatAssignInput struct {
	Person Nullable[uuid.UUID] `json:"person"`
}

// SeatSwapInput exchanges the occupants of two seats of the same lineup.
type SeatSwapInput struct {
	First  *int64 `json:"first"`
	Second *int64 `json:"second"`
}

type LineupFilter struct {
	TrainingID *int64
	State      *LineupState
	Ordering   string
	Pagination utils.PaginationParams
}

type LineupSeatFilter struct {
	LineupID   *int64
	Side       *SeatSide
	SeatNumber *int
	PersonID   *uuid.UUID
	Ordering   string
	Pagination utils.PaginationParams
}
