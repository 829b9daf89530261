package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject id
// and a known role must be present, otherwise the token is structurally
// valid but operationally unusable.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	rawRole, _ := c.Get("role").(string)
	role = domain.Role(rawRole)

	if userID == "" || !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// requireSelfOrAdmin rejects callers that are neither the resource owner nor
// an admin. Used on endpoints like employee detail and attendance records.
func requireSelfOrAdmin(c echo.Context, ownerID string) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && userID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
