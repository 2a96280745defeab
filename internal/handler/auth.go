package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/middleware"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
	"github.com/iliyamo/movie-chat-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Store *repository.Store
}

func NewAuthHandler(cfg config.Config, s *repository.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: s}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User   model.User `json:"user"`
	Access tokenPart  `json:"access"`
}

func (r *credentialsReq) normalize() bool {
	r.Username = strings.TrimSpace(r.Username)
	return r.Username != "" && r.Password != ""
}

// Register: create user and return an access token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil || !req.normalize() {
		return message(c, http.StatusBadRequest, "username and password are required")
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooShort) {
		return message(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return internalError(c, err)
	}
	u, err := h.Store.RegisterUser(req.Username, hash)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return message(c, http.StatusConflict, "Username already exists")
	}
	if err != nil {
		return internalError(c, err)
	}
	return h.issue(c, http.StatusCreated, u)
}

// Login: verify credentials and return a new access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil || !req.normalize() {
		return message(c, http.StatusBadRequest, "username and password are required")
	}
	u, ok := h.Store.GetUserByUsername(req.Username)
	if !ok || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return message(c, http.StatusUnauthorized, "Invalid credentials")
	}
	return h.issue(c, http.StatusOK, u)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not signed in")
	}
	u, ok := h.Store.GetUser(id)
	if !ok {
		return message(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) issue(c echo.Context, status int, u model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(status, authResp{
		User:   u,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
