package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type MembershipHandler struct {
	usecase *usecases.MembershipUsecase
}

func NewMembershipHandler(usecase *usecases.MembershipUsecase) *MembershipHandler {
	return &MembershipHandler{usecase: usecase}
}

// ListMemberships
// GET /api/v1/membership?team=&person=&role=&search=
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.MembershipFilter{
		TeamID:     q.UUID("team"),
		PersonID:   q.UUID("person"),
		Search:     params.Search,
		Ordering:   params.Ordering,
		Pagination: params.Pagination,
	}
	if role := q.Int("role"); role != nil {
		r := entities.MembershipRole(*role)
		filter.Role = &r
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

// CreateMembership adds a person to a team, subject to team capacity.
// POST /api/v1/membership
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var input entities.MembershipInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	membership, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, membership)
}

// GET /api/v1/membership/:id
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	membership, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, membership)
}

// PUT|PATCH /api/v1/membership/:id
func (h *MembershipHandler) UpdateMembership(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuidParam(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.MembershipInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		membership, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, membership)
	}
}

// DELETE /api/v1/membership/:id
func (h *MembershipHandler) DeleteMembership(c *gin.Context) {
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
