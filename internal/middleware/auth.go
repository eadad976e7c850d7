package middleware

import (
	"fmt"
	"net/http"
	"strings"

	userRepo "anoa.com/bookcommunity/internal/modules/user/repository"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ctxUserID = "user_id"
	ctxActor  = "actor"
)

var errInvalidToken = apperror.New(http.StatusUnauthorized, "invalid or expired token", apperror.ErrUnauthorized)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// Authenticate resolves the actor for every request. A request without a
// token continues as anonymous; a bad token is rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			SetActor(c, policy.Anonymous)
			c.Next()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			response.ResponseError(c, errInvalidToken)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			response.ResponseError(c, errInvalidToken)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.ResponseError(c, errInvalidToken)
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.ResponseError(c, apperror.New(http.StatusUnauthorized, "user not found", apperror.ErrUnauthorized))
			c.Abort()
			return
		}

		SetActor(c, policy.Actor{
			UserID:        user.ID,
			Username:      user.Username,
			Authenticated: true,
			Admin:         user.IsAdmin(),
		})
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFromContext(c).Authenticated {
			response.ResponseError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !actor.Authenticated {
			response.ResponseError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}
		if !actor.Admin {
			response.ResponseError(c, apperror.New(http.StatusForbidden, "admin access required", apperror.ErrForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetActor stores the resolved actor on the request.
func SetActor(c *gin.Context, actor policy.Actor) {
	if actor.Authenticated {
		c.Set(ctxUserID, actor.UserID.String())
	}
	c.Set(ctxActor, actor)
}

// ActorFromContext returns the actor set by Authenticate, or the anonymous
// actor when the middleware did not run.
func ActorFromContext(c *gin.Context) policy.Actor {
	if v, ok := c.Get(ctxActor); ok {
		if actor, ok := v.(policy.Actor); ok {
			return actor
		}
	}
	return policy.Anonymous
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	// Fallback to query parameter "token" (useful for WebSockets)
	return c.Query("token")
}
