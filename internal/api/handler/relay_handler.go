package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/api/middleware"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/infrastructure/relay"
)

// RelayHandler upgrades GET /ws to a websocket and registers the connection
// with the hub. Authentication happens before the upgrade: browsers send the
// session cookie, other clients pass ?token=.
type RelayHandler struct {
	hub       *relay.Hub
	jwtSecret string
	origin    string
}

func NewRelayHandler(hub *relay.Hub, jwtSecret, origin string) *RelayHandler {
	return &RelayHandler{hub: hub, jwtSecret: jwtSecret, origin: origin}
}

func (h *RelayHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == h.origin
		},
	}
}

// Serve handles GET /ws.
func (h *RelayHandler) Serve(c echo.Context) error {
	identity, err := h.identify(c)
	if err != nil {
		return err
	}

	up := h.upgrader()
	conn, err := up.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		return nil
	}

	metrics.RelayConnections.Inc()
	defer metrics.RelayConnections.Dec()

	client := relay.NewClient(h.hub, conn, identity)
	client.Run()
	return nil
}

func (h *RelayHandler) identify(c echo.Context) (relay.Identity, error) {
	raw := ""
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		raw = cookie.Value
	}
	if raw == "" {
		raw = c.QueryParam("token")
	}
	if raw == "" {
		return relay.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return relay.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	identity := relay.Identity{UserID: userID, Role: domain.Role(role)}
	if identity.UserID == "" || !identity.Role.Valid() {
		return relay.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
