package middleware

import (
	"errors"
	"net/http"
	"strings"

	"larp-server/internal/models"
	"larp-server/pkg/authutils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// actorContextKey is where the authenticated principal is stored on the
// echo context.
const actorContextKey = "actor"

// AuthMiddleware returns an Echo middleware that verifies the Bearer token
// and stores the resulting Actor on the request context.
func AuthMiddleware(verifier *authutils.JWTVerifier, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.With(zap.String("path", c.Request().URL.Path))

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: missing Authorization header")
			}
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: expected Bearer token")
			}

			claims, err := verifier.VerifyToken(c.Request().Context(), tokenString)
			if err != nil {
				msg := "Unauthorized: invalid token"
				if errors.Is(err, models.ErrTokenExpired) {
					msg = "Unauthorized: token expired"
				}
				log.Warn("Token verification failed", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			c.Set(actorContextKey, models.Actor{
				UserID: claims.UserID,
				Roles:  claims.Roles,
			})
			return next(c)
		}
	}
}

// ActorFromContext returns the Actor the auth middleware stored, or
// models.ErrUnauthorized when the request never passed through it.
func ActorFromContext(c echo.Context) (models.Actor, error) {
	actor, ok := c.Get(actorContextKey).(models.Actor)
	if !ok {
		return models.Actor{}, models.ErrUnauthorized
	}
	return actor, nil
}

// RequireRole returns a middleware that rejects actors missing the role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := ActorFromContext(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if !actor.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: missing role "+role)
			}
			return next(c)
		}
	}
}
