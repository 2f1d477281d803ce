package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/internal/usecases"
)

type TrainingHandler struct {
	usecase *usecases.TrainingUsecase
}

func NewTrainingHandler(usecase *usecases.TrainingUsecase) *TrainingHandler {
	return &TrainingHandler{usecase: usecase}
}

// ListTrainings filters by team, location and a start_at window.
// GET /api/v1/training?team=&location=&start_at_gte=&start_at_lte=
func (h *TrainingHandler) ListTrainings(c *gin.Context) {
	params := parseListParams(c)
	q := newQueryFilters(c)
	filter := entities.TrainingFilter{
		TeamID:     q.UUID("team"),
		LocationID: q.Int64("location"),
		StartAtGTE: q.Time("start_at_gte"),
		StartAtLTE: q.Time("start_at_lte"),
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

// POST /api/v1/training
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var input entities.TrainingInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	training, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, training)
}

// GET /api/v1/training/:id
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	training, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, training)
}

// PUT|PATCH /api/v1/training/:id
func (h *TrainingHandler) UpdateTraining(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input entities.TrainingInput
		if err := bindJSON(c, &input); err != nil {
			response.Error(c, err)
			return
		}
		training, err := h.usecase.Update(c.Request.Context(), id, &input, partial)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, training)
	}
}

// DeleteTraining removes the training with its lineup and seats.
// DELETE /api/v1/training/:id
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
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
