package middleware

import (
	"context"
	"errors"
	"net/http"

	"travel-agency/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// ContextKeyUsername is where the validated token subject is stashed on the
// request context.
const ContextKeyUsername = "username"

// RoleLoader resolves the role grants of a validated subject. Backed by the
// users/roles tables; called once per gated request.
type RoleLoader interface {
	RolesByUsername(ctx context.Context, username string) ([]string, error)
}

// JWTAuth configures echo's JWT middleware: it verifies signature and expiry
// on the Authorization bearer token and extracts the subject. Every failure
// mode maps to a 401-class response, never a 500.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey: []byte(jwtSecretKey),

		SuccessHandler: func(c echo.Context) {
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)
			c.Set(ContextKeyUsername, claims.Subject)
		},

		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Errorf("JWT error: %v", err)

			if errors.Is(err, echojwt.ErrJWTMissing) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing or malformed JWT"})
			}
			if errors.Is(err, jwt.ErrTokenMalformed) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid JWT token"})
			} else if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "JWT token is expired"})
			} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid JWT token signature"})
			} else if errors.Is(err, jwt.ErrTokenUnverifiable) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Unsupported JWT token"})
			}

			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired JWT"})
		},
	}
	return echojwt.WithConfig(config)
}

// AdminRequired gates mutation endpoints: it loads the subject's role grants
// and rejects requests lacking the ADMIN role with 403. Must run after
// JWTAuth so the subject is already on the context.
func AdminRequired(roles RoleLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := c.Get(ContextKeyUsername).(string)
			if !ok || username == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing authenticated subject"})
			}

			granted, err := roles.RolesByUsername(c.Request().Context(), username)
			if err != nil {
				c.Logger().Errorf("failed to load roles for %s: %v", username, err)
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to verify permissions"})
			}

			for _, role := range granted {
				if role == models.RoleAdmin {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied: ADMIN role required"})
		}
	}
}
