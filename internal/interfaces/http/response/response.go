package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/pkg/logger"
	"dragon-roster.backend/pkg/metrics"
	"dragon-roster.backend/pkg/utils"
)

// NotFoundDetail is the body detail for unknown resources.
const NotFoundDetail = "Not found."

// ListBody is the envelope of every paginated listing.
type ListBody struct {
	Results interface{}          `json:"results"`
	Meta    utils.PaginationMeta `json:"meta"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// List sends one page of results with its pagination meta.
func List(c *gin.Context, results interface{}, total int64, p utils.PaginationParams) {
	c.JSON(http.StatusOK, ListBody{
		Results: results,
		Meta:    utils.CalculateMeta(total, p.Page, p.Limit),
	})
}

// NoContent answers a successful delete.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response. Input and rule violations are keyed by
// field, everything else carries a single detail string.
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.As(err)
	if !ok {
		if errors.Is(err, domainerrors.ErrNotFound) {
			appErr = domainerrors.NotFound(NotFoundDetail)
		} else {
			appErr = domainerrors.InternalError(err)
		}
	}

	switch appErr.Code {
	case domainerrors.CodeValidation, domainerrors.CodeConflict, domainerrors.CodeCapacity:
		metrics.IncRejection(domainerrors.Kind(appErr))
		fields := appErr.Fields
		if len(fields) == 0 {
			fields = map[string][]string{domainerrors.NonFieldErrorsKey: {appErr.Message}}
		}
		c.JSON(appErr.Status, fields)
	case domainerrors.CodeInternalError:
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": appErr.Message})
	default:
		c.JSON(appErr.Status, gin.H{"detail": appErr.Message})
	}
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
