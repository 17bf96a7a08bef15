package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/config"
	"github.com/EsmaNErdem/jobly/internal/queue"
	"github.com/EsmaNErdem/jobly/internal/repository"
	queue_publisher "github.com/EsmaNErdem/jobly/internal/service"
	"github.com/EsmaNErdem/jobly/internal/utils"
)

// UserHandler bundles dependencies for the user and application endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// userCreateReq is the admin-side creation DTO. Unlike registration a
// password is never supplied: one is generated server-side and returned
// only inside the signed token response.
type userCreateReq struct {
	Username     string   `json:"username" validate:"required,min=1,max=25"`
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	IsAdmin      bool     `json:"isAdmin"`
	Technologies []string `json:"technologies" validate:"omitempty,dive,min=1"`
}

type userUpdateReq struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=5"`
	IsAdmin   *bool   `json:"isAdmin"`
}

type applyReq struct {
	State string `json:"state" validate:"omitempty,oneof=interested applied accepted rejected"`
}

type applicationUpdateReq struct {
	State string `json:"state" validate:"required,oneof=interested applied accepted rejected"`
}

// Create handles POST /users. Admin only. A random password is generated
// for the new account; the returned token lets the admin hand off access
// without the password ever appearing in a response body.
func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	password, err := utils.RandomPassword(16)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Register(ctx, repository.RegisterParams{
		Username:     req.Username,
		Password:     password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		IsAdmin:      req.IsAdmin,
		Technologies: req.Technologies,
	})
	if err != nil {
		return writeError(c, err)
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, utils.Principal{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// List handles GET /users. Admin only.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.FindAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Get handles GET /users/:username. Admin or the user themselves.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Get(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Update handles PATCH /users/:username. Admin or the user themselves.
// The username itself is immutable.
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	fields := &repository.UpdateFields{}
	if req.FirstName != nil {
		fields.Set("firstName", *req.FirstName)
	}
	if req.LastName != nil {
		fields.Set("lastName", *req.LastName)
	}
	if req.Email != nil {
		fields.Set("email", *req.Email)
	}
	if req.Password != nil {
		fields.Set("password", *req.Password)
	}
	if req.IsAdmin != nil {
		fields.Set("isAdmin", *req.IsAdmin)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Update(ctx, c.Param("username"), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Remove handles DELETE /users/:username. Admin or the user themselves.
func (h *UserHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	username := c.Param("username")
	if err := h.Users.Remove(ctx, username); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": username})
}

// Apply handles POST /users/:username/jobs/:id. Admin or the user
// themselves. An empty body is valid and applies with the default state.
// On success an event is published asynchronously; a broker outage never
// fails the request.
func (h *UserHandler) Apply(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	var req applyReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	username := c.Param("username")
	app, err := h.Users.ApplyToJob(ctx, username, id, req.State)
	if err != nil {
		return writeError(c, err)
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishApplicationSubmitted(pubCtx, queue.ApplicationSubmittedEvent{
			Username:    username,
			JobID:       app.JobID,
			State:       app.State,
			SubmittedAt: time.Now().UTC(),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"applied": app})
}

// UpdateApplication handles PATCH /users/:username/jobs/:id. Admin or the
// user themselves.
func (h *UserHandler) UpdateApplication(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	var req applicationUpdateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	fields := &repository.UpdateFields{}
	fields.Set("state", req.State)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Users.UpdateApplication(ctx, c.Param("username"), id, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"application": app})
}
