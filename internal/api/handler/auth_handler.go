package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tanit/user-management/internal/api/metrics"
	"github.com/tanit/user-management/internal/core/domain"
	"github.com/tanit/user-management/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenService
	users       ports.UserRepository
	sessions    ports.SessionSink
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenService, users ports.UserRepository, sessions ports.SessionSink) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		users:       users,
		sessions:    sessions,
	}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch err {
		case domain.ErrEmailTaken:
			metrics.SignupsTotal.WithLabelValues("email_taken").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "user already exists"})
		case domain.ErrInvalidCredentials:
			metrics.SignupsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			metrics.SignupsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	// PasswordHash never serializes (json:"-"), so returning the stored user
	// directly cannot leak the hash.
	return c.JSON(http.StatusOK, user)
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.tokens.Generate(user.Email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	// Fire-and-forget session record; nothing in the authorization path
	// reads it back.
	h.sessions.Enqueue(ports.SessionInput{Email: user.Email, LoginAt: time.Now().UTC()})

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Profile returns the authenticated user's record.
//
// @Summary      Get the logged-in user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	email, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}
