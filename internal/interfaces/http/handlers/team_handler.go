package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type TeamHandler struct {
	usecase *usecases.TeamUsecase
}

func NewTeamHandler(usecase *usecases.TeamUsecase) *TeamHandler {
	return &TeamHandler{usecase: usecase}
}

// ListTeams returns teams with their active member counts.
// GET /api/v1/team?city=&search=
func (h *TeamHandler) ListTeams(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.TeamFilter{
		City:       q.Text("city"),
		Search:     params.Search,
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
	}

	items, total, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total, params.Pagination)
}

// CreateTeam creates a team.
// POST /api/v1/team
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var input entities.TeamInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	team, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, team)
}

// GetTeam returns one team.
// GET /api/v1/team/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	team, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, team)
}

// UpdateTeam updates a team.
// PUT|PATCH /api/v1/team/:id
func (h *TeamHandler) UpdateTeam(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuidParam(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.TeamInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		team, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, team)
	}
}

// DeleteTeam deletes a team together with everything it owns.
// DELETE /api/v1/team/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, err := uuidParam(c, "id")
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
