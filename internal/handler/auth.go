package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/config"
	"github.com/EsmaNErdem/jobly/internal/repository"
	"github.com/EsmaNErdem/jobly/internal/utils"
)

// AuthHandler bundles dependencies for the token endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Username     string   `json:"username" validate:"required,min=1,max=25"`
	Password     string   `json:"password" validate:"required,min=5"`
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Technologies []string `json:"technologies" validate:"omitempty,dive,required"`
}

type tokenReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles self-registration. New accounts are never admins; only
// the admin-only user-create endpoint can set that flag. Returns the
// created user and a token for it.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Register(ctx, repository.RegisterParams{
		Username:     req.Username,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		IsAdmin:      false,
		Technologies: req.Technologies,
	})
	if err != nil {
		return writeError(c, err)
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret,
		utils.Principal{Username: user.Username, IsAdmin: user.IsAdmin}, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// Token exchanges a username/password pair for an access token. Bad
// credentials come back as 401 regardless of whether the username exists.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	token, err := utils.NewAccessToken(h.Cfg.JWTSecret,
		utils.Principal{Username: user.Username, IsAdmin: user.IsAdmin}, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
