package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-system/internal/api/middleware"
	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// ctxActor returns the authenticated user injected by the Auth middleware.
// A missing user id means the route was mounted without the middleware.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get(middleware.KeyUserID).(uint)
	if id == 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(middleware.KeyUsername).(string)
	return domain.Actor{ID: id, Username: username}, nil
}

// ctxClaims returns the claims of the token presented on this request.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	actor, err := ctxActor(c)
	if err != nil {
		return ports.TokenClaims{}, err
	}
	tokenID, _ := c.Get(middleware.KeyTokenID).(string)
	exp, _ := c.Get(middleware.KeyTokenExp).(time.Time)
	return ports.TokenClaims{
		UserID:    actor.ID,
		Username:  actor.Username,
		TokenID:   tokenID,
		ExpiresAt: exp,
	}, nil
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// bindAndValidate decodes the request body into req and runs its tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// openFormFile opens the named multipart file field.
func openFormFile(c echo.Context, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return f, nil
}
