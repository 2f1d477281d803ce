package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/interfaces/http/response"
	"dragon-roster.backend/pkg/jwt"
	"dragon-roster.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the verified caller
	IdentityKey = "identity"
	// UserIDKey is the context key for the caller id
	UserIDKey = "user_id"
)

const (
	MsgCredentialsMissing = "Authentication credentials were not provided."
	MsgTokenInvalid       = "Given token not valid for any token type"
	MsgTokenExpired       = "Token is expired"
	MsgHeaderMalformed    = "Authorization header must contain two space-delimited values"
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware verifies bearer tokens issued by the identity provider. A
// request without a token passes through unless required is set; a token
// that is present must always be valid.
func AuthMiddleware(validator TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			if required {
				reject(c, MsgCredentialsMissing)
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			reject(c, MsgHeaderMalformed)
			return
		}

		claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				reject(c, MsgTokenExpired)
				return
			}
			reject(c, MsgTokenInvalid)
			return
		}

		identity := &entities.Identity{
			ID:          claims.UserID,
			Username:    claims.Username,
			Email:       claims.Email,
			IsStaff:     claims.IsStaff,
			IsSuperuser: claims.IsSuperuser,
		}
		c.Set(IdentityKey, identity)
		c.Set(UserIDKey, identity.ID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), identity.ID))

		c.Next()
	}
}

func reject(c *gin.Context, detail string) {
	logger.Warn(c.Request.Context(), "Authentication failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", detail),
	)
	response.Abort(c, domainerrors.Unauthorized(detail))
}

// GetIdentity returns the verified caller, if any.
func GetIdentity(c *gin.Context) (*entities.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*entities.Identity)
	return identity, ok
}
