package middleware

import (
	"net/http"

	"techmart/internal/common"
	"techmart/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/google/uuid"
)

// JWT validates the bearer token and stashes the authenticated user ID in
// the request context.
func JWT(authService services.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := authService.ValidateToken(auth)
			if err != nil {
				return nil, err
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, err
			}
			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
