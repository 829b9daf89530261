package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/api/middleware"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// CookieOptions controls the session cookie the login handler issues.
type CookieOptions struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.LoginLimiter
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, limiter ports.LoginLimiter, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, cookie: cookie}
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin employee"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type verifyResponse struct {
	Success bool         `json:"success"`
	ID      string       `json:"id"`
	Role    domain.Role  `json:"role"`
	User    *domain.User `json:"user"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleEmployee
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Success: true, User: user})
}

// Login handles POST /api/auth/login. Successful logins set the HTTP-only
// session cookie and echo the token for non-browser clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Fixed-window limit per client address. A limiter backend failure
	// fails open so Redis downtime does not lock everyone out.
	if allowed, err := h.limiter.Allow(c.Request().Context(), c.RealIP()); err == nil && !allowed {
		metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		return domain.ErrRateLimited
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.cookie.TTL))
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

// Verify handles GET /api/verify. The middleware already validated the
// token; this resolves the subject back to a live account so deleted users
// get a 401 rather than a phantom session.
func (h *AuthHandler) Verify(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.VerifyUser(c.Request().Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
		}
		return err
	}

	return c.JSON(http.StatusOK, verifyResponse{Success: true, ID: user.ID, Role: role, User: user})
}

// Logout handles POST /api/logout. Clearing an absent cookie is fine, the
// operation is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
