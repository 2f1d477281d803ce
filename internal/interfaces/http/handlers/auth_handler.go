package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/interfaces/http/middleware"
	"dragon-roster.backend/internal/interfaces/http/response"
)

// AuthHandler exposes the identity asserted by the bearer token. Accounts
// live with the external identity provider.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// GetMe returns the current caller.
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(middleware.MsgCredentialsMissing))
		return
	}
	response.Success(c, http.StatusOK, identity)
}
