package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type LocationHandler struct {
	usecase *usecases.LocationUsecase
}

func NewLocationHandler(usecase *usecases.LocationUsecase) *LocationHandler {
	return &LocationHandler{usecase: usecase}
}

// GET /api/v1/location?team=&search=
func (h *LocationHandler) ListLocations(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.LocationFilter{
		TeamID:     q.UUID("team"),
		Search:     params.Search,
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
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

// POST /api/v1/location
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var input entities.LocationInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	location, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, location)
}

// GET /api/v1/location/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	location, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, location)
}

// PUT|PATCH /api/v1/location/:id
func (h *LocationHandler) UpdateLocation(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.LocationInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		location, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, location)
	}
}

// DeleteLocation fails with 409 while trainings still use the location.
// DELETE /api/v1/location/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
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
