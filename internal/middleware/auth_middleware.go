package middleware

import (
	"github.com/gin-gonic/gin"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/auth"
	"github.com/yigit/campusnet/internal/pkg/logger"
)

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// AuthMiddleware resolves the acting user from a bearer token
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	revocations auth.RevocationList
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, revocations auth.RevocationList) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		revocations: revocations,
	}
}

// OptionalAuth resolves the actor when an Authorization header is present.
// A present but invalid, expired or revoked token is rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(header)
		if err != nil {
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		if m.revocations != nil {
			revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims.TokenID())
			if err != nil {
				logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to check token revocation")
				HandleAPIError(c, err)
				return
			}
			if revoked {
				HandleAPIError(c, apperrors.ErrTokenRevoked)
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Set(actorKey, &authz.Actor{UserID: claims.UserID, Username: claims.Username})
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth left without an actor
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c) == nil {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated actor, or nil for anonymous requests
func CurrentActor(c *gin.Context) *authz.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*authz.Actor)
	return actor
}

// CurrentClaims returns the validated token claims, if any
func CurrentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
