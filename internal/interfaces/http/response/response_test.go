package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/pkg/utils"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestList(t *testing.T) {
	c, w := newContext()

	List(c, []string{"a", "b"}, 5, utils.PaginationParams{Page: 2, Limit: 2})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []interface{}{"a", "b"}, body["results"])
	assert.Equal(t, map[string]interface{}{
		"page": 2.0, "limit": 2.0, "totalCount": 5.0, "totalPages": 3.0,
	}, body["meta"])
}

func TestNoContent(t *testing.T) {
	c, w := newContext()
	NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestError_ValidationIsFieldKeyed(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Validation("location", domainerrors.MsgLocationWrongTeam))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"location":["Location must belong to the same team."]}`, w.Body.String())
}

func TestError_Capacity(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Capacity(2))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"team":["Team is at capacity (2). Cannot add another member."]}`, w.Body.String())
}

func TestError_Conflict(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Conflict(domainerrors.MsgSeatOccupied))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"non_field_errors":["Seat already occupied."]}`, w.Body.String())
}

func TestError_NotFound(t *testing.T) {
	c, w := newContext()

	Error(c, fmt.Errorf("lookup: %w", domainerrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, NotFoundDetail, decode(t, w)["detail"])
}

func TestError_Unauthorized(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Unauthorized("Given token not valid for any token type"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Given token not valid for any token type", decode(t, w)["detail"])
}

func TestError_GenericErrorHidesCause(t *testing.T) {
	c, w := newContext()

	Error(c, errors.New("dial tcp: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, w.Body.String())
}

func TestAbort(t *testing.T) {
	c, w := newContext()

	Abort(c, domainerrors.Forbidden("nope"))
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
