package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthJWTMiddleware resolves the principal from a bearer token or the auth
// cookie and places the user into both the echo context and the request context.
func (mw *MiddlewareManager) AuthJWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearerHeader := c.Request().Header.Get("Authorization")

			if bearerHeader != "" {
				headerParts := strings.Split(bearerHeader, " ")
				if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "Bearer") {
					mw.logger.Errorf("auth middleware: malformed authorization header, RequestID: %s", utils.GetRequestID(c))
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				}
				if err := mw.validateJWTToken(c, headerParts[1]); err != nil {
					mw.logger.Errorf("auth middleware: validateJWTToken: %v", err)
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				}
				return next(c)
			}

			cookie, err := c.Cookie(mw.cfg.Cookie.Name)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			if err = mw.validateJWTToken(c, cookie.Value); err != nil {
				mw.logger.Errorf("auth middleware: validateJWTToken: %v", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}

func (mw *MiddlewareManager) validateJWTToken(c echo.Context, tokenString string) error {
	if tokenString == "" {
		return fmt.Errorf("empty token string")
	}

	claims, err := utils.ValidateToken(tokenString, mw.cfg.Server.JwtSecretKey)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id in token claims: %w", err)
	}

	user, err := mw.authUC.GetByID(c.Request().Context(), userUUID)
	if err != nil {
		return err
	}

	c.Set("user", user)
	ctx := context.WithValue(c.Request().Context(), utils.UserCtxKey{}, user)
	c.SetRequest(c.Request().WithContext(ctx))
	return nil
}
