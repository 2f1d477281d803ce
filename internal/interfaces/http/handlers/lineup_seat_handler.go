package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type LineupSeatHandler struct {
	usecase *usecases.LineupSeatUsecase
}

func NewLineupSeatHandler(usecase *usecases.LineupSeatUsecase) *LineupSeatHandler {
	return &LineupSeatHandler{usecase: usecase}
}

// GET /api/v1/lineup-seat?lineup=&side=&seat_number=&person=
func (h *LineupSeatHandler) ListSeats(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.LineupSeatFilter{
		LineupID:   q.Int64("lineup"),
		SeatNumber: q.Int("seat_number"),
		PersonID:   q.UUID("person"),
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
	}
	if side := q.Text("side"); side != nil {
		s := entities.SeatSide(*side)
		if !s.IsValid() {
			q.fail("side", "Select a valid choice. "+*side+" is not one of the available choices.")
		}
		filter.Side = &s
	}
	if err := q.err(); err != nil {
		response.Error(c, err)
		return
	}

	items, total, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total, params.Pagination)
}

// CreateSeat places a seat; the position is checked before the person.
// POST /api/v1/lineup-seat
func (h *LineupSeatHandler) CreateSeat(c *gin.Context) {
	var input entities.LineupSeatInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	seat, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, seat)
}

// GET /api/v1/lineup-seat/:id
func (h *LineupSeatHandler) GetSeat(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	seat, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}

// PUT|PATCH /api/v1/lineup-seat/:id
func (h *LineupSeatHandler) UpdateSeat(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.LineupSeatInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		seat, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, seat)
	}
}

// DELETE /api/v1/lineup-seat/:id
func (h *LineupSeatHandler) DeleteSeat(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignSeat seats a person here, vacating their other seat in the lineup.
// POST /api/v1/lineup-seat/:id/assign
func (h *LineupSeatHandler) AssignSeat(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.SeatAssignInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	seat, err := h.usecase.Assign(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}

// SwapSeats exchanges the occupants of two seats.
// POST /api/v1/lineup-seat/swap
func (h *LineupSeatHandler) SwapSeats(c *gin.Context) {
	var input entities.SeatSwapInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	seats, err := h.usecase.Swap(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, seats)
}
