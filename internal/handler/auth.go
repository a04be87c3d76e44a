package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/iliyamo/bus-seat-reservation/internal/utils"
	"github.com/labstack/echo/v4"
)

// AuthHandler bundles the user repository and the token settings needed
// to register accounts and issue access tokens.
type AuthHandler struct {
	Users        *repository.UserRepo
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// NewAuthHandler constructs an AuthHandler and panics if the repository
// is nil.
func NewAuthHandler(users *repository.UserRepo, jwtSecret string, accessTTLMin, bcryptCost int) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{
		Users:        users,
		JWTSecret:    jwtSecret,
		AccessTTLMin: accessTTLMin,
		BcryptCost:   bcryptCost,
	}
}

// Register handles POST /v1/auth/register. The request body carries
// email, password and an optional role (OWNER or CUSTOMER; CUSTOMER by
// default). On success the created user's ID and role are returned.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and a password of at least 8 characters are required"})
	}
	role := strings.ToUpper(strings.TrimSpace(body.Role))
	switch role {
	case "":
		role = "CUSTOMER"
	case "OWNER", "CUSTOMER":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be OWNER or CUSTOMER"})
	}
	id, err := h.Users.Create(c.Request().Context(), email, body.Password, role, h.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "email": email, "role": role})
}

// Login handles POST /v1/auth/login. It verifies the credentials and
// returns a signed access token with its expiry.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Role, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}

// Me handles GET /v1/me and returns the authenticated user's record
// without the password hash.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        u.ID,
		"email":     u.Email,
		"role":      u.Role,
		"is_active": u.IsActive,
	})
}
