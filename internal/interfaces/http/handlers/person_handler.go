package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type PersonHandler struct {
	usecase *usecases.PersonUsecase
}

func NewPersonHandler(usecase *usecases.PersonUsecase) *PersonHandler {
	return &PersonHandler{usecase: usecase}
}

// ListPersons lists people.
// GET /api/v1/person?side=&search=&ordering=&page=&limit=
func (h *PersonHandler) ListPersons(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.PersonFilter{
		Search:     params.Search,
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
	}
	if side := q.Int("side"); side != nil {
		s := entities.PersonSide(*side)
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

// CreatePerson creates a person.
// POST /api/v1/person
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var input entities.PersonInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	person, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, person)
}

// GetPerson returns one person.
// GET /api/v1/person/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	person, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, person)
}

// UpdatePerson serves PUT (partial=false) and PATCH.
// PUT|PATCH /api/v1/person/:id
func (h *PersonHandler) UpdatePerson(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuidParam(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.PersonInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		person, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, person)
	}
}

// DeletePerson removes a person, their memberships and frees their seats.
// DELETE /api/v1/person/:id
func (h *PersonHandler) DeletePerson(c *gin.Context) {
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
