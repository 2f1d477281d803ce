package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type LineupHandler struct {
	usecase *usecases.LineupUsecase
}

func NewLineupHandler(usecase *usecases.LineupUsecase) *LineupHandler {
	return &LineupHandler{usecase: usecase}
}

// GET /api/v1/lineup?training=&state=
func (h *LineupHandler) ListLineups(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.LineupFilter{
		TrainingID: q.Int64("training"),
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
	}
	if state := q.Int("state"); state != nil {
		s := entities.LineupState(*state)
		filter.State = &s
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

// CreateLineup opens the lineup of a training; a training has at most one.
// POST /api/v1/lineup
func (h *LineupHandler) CreateLineup(c *gin.Context) {
	var input entities.LineupInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	lineup, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, lineup)
}

// GET /api/v1/lineup/:id
func (h *LineupHandler) GetLineup(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	lineup, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, lineup)
}

// GetLineupSeats returns the seat chart ordered by side then seat number.
// GET /api/v1/lineup/:id/seats
func (h *LineupHandler) GetLineupSeats(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	seats, err := h.usecase.Seats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, seats)
}

// UpdateLineup moves the lineup between Draft and Published.
// PUT|PATCH /api/v1/lineup/:id
func (h *LineupHandler) UpdateLineup(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.LineupInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		lineup, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, lineup)
	}
}

// DELETE /api/v1/lineup/:id
func (h *LineupHandler) DeleteLineup(c *gin.Context) {
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
