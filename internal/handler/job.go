package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/repository"
)

// JobHandler bundles dependencies for the job endpoints.
type JobHandler struct {
	Jobs *repository.JobRepo
}

func NewJobHandler(jobs *repository.JobRepo) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

type jobCreateReq struct {
	Title         string   `json:"title" validate:"required"`
	Salary        *int64   `json:"salary" validate:"omitempty,min=0"`
	Equity        *string  `json:"equity" validate:"omitempty,numeric"`
	CompanyHandle string   `json:"companyHandle" validate:"required"`
	Technologies  []string `json:"technologies" validate:"omitempty,dive,required"`
}

type jobUpdateReq struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Salary *int64  `json:"salary" validate:"omitempty,min=0"`
	Equity *string `json:"equity" validate:"omitempty,numeric"`
}

// Create handles POST /jobs. Admin only.
func (h *JobHandler) Create(c echo.Context) error {
	var req jobCreateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.Create(ctx, req.Title, req.Salary, req.Equity, req.CompanyHandle, req.Technologies)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"job": job})
}

// List handles GET /jobs with optional title, minSalary and hasEquity query
// filters. Public.
func (h *JobHandler) List(c echo.Context) error {
	var filters repository.JobSearchFilters
	if title := c.QueryParam("title"); title != "" {
		filters.Title = &title
	}
	if raw := c.QueryParam("minSalary"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "minSalary must be an integer"})
		}
		filters.MinSalary = &n
	}
	filters.HasEquity = c.QueryParam("hasEquity") == "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.FindAll(ctx, filters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

// Get handles GET /jobs/:id. Public.
func (h *JobHandler) Get(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"job": job})
}

// Update handles PATCH /jobs/:id. Admin only. Only fields present in the
// body are touched; field order in the generated statement follows the
// declaration order below.
func (h *JobHandler) Update(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	var req jobUpdateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	fields := &repository.UpdateFields{}
	if req.Title != nil {
		fields.Set("title", *req.Title)
	}
	if req.Salary != nil {
		fields.Set("salary", *req.Salary)
	}
	if req.Equity != nil {
		fields.Set("equity", *req.Equity)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.Update(ctx, id, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"job": job})
}

// Remove handles DELETE /jobs/:id. Admin only.
func (h *JobHandler) Remove(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Jobs.Remove(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

func jobID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "job id must be an integer")
	}
	return id, nil
}
