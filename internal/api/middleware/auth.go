package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyTokenID  = "token_id"
	KeyTokenExp = "token_exp"
)

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth validates the bearer JWT, rejects revoked tokens and injects the
// claims into the context. denylist may be nil.
func Auth(jwtSecret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims tokenClaims
			tkn, err := parser.ParseWithClaims(parts[1], &claims, keyFunc)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := strconv.ParseUint(claims.Subject, 10, 0)
			if err != nil || userID == 0 || claims.ID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					return err
				}
				if revoked {
					return domain.ErrTokenRevoked
				}
			}

			c.Set(KeyUserID, uint(userID))
			c.Set(KeyUsername, claims.Username)
			c.Set(KeyTokenID, claims.ID)
			c.Set(KeyTokenExp, claims.ExpiresAt.Time)

			return next(c)
		}
	}
}
