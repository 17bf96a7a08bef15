package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/model"
	"github.com/EsmaNErdem/jobly/internal/repository"
)

// CompanyHandler bundles dependencies for the company endpoints.
type CompanyHandler struct {
	Companies *repository.CompanyRepo
}

func NewCompanyHandler(companies *repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{Companies: companies}
}

type companyCreateReq struct {
	Handle       string  `json:"handle" validate:"required,lowercase,max=25"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

type companyUpdateReq struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int64  `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// Create handles POST /companies. Admin only.
func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyCreateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.Create(ctx, &model.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"company": company})
}

// List handles GET /companies with optional name, minEmployees and
// maxEmployees query filters. Public.
func (h *CompanyHandler) List(c echo.Context) error {
	var filters repository.CompanySearchFilters
	if name := c.QueryParam("name"); name != "" {
		filters.Name = &name
	}
	for param, dst := range map[string]**int64{
		"minEmployees": &filters.MinEmployees,
		"maxEmployees": &filters.MaxEmployees,
	} {
		if raw := c.QueryParam(param); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": param + " must be an integer"})
			}
			*dst = &n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	companies, err := h.Companies.FindAll(ctx, filters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"companies": companies})
}

// Get handles GET /companies/:handle. Public.
func (h *CompanyHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.Get(ctx, c.Param("handle"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"company": company})
}

// Update handles PATCH /companies/:handle. Admin only. The handle is
// immutable and absent from the update DTO.
func (h *CompanyHandler) Update(c echo.Context) error {
	var req companyUpdateReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	fields := &repository.UpdateFields{}
	if req.Name != nil {
		fields.Set("name", *req.Name)
	}
	if req.Description != nil {
		fields.Set("description", *req.Description)
	}
	if req.NumEmployees != nil {
		fields.Set("numEmployees", *req.NumEmployees)
	}
	if req.LogoURL != nil {
		fields.Set("logoUrl", *req.LogoURL)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.Update(ctx, c.Param("handle"), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"company": company})
}

// Remove handles DELETE /companies/:handle. Admin only.
func (h *CompanyHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	handle := c.Param("handle")
	if err := h.Companies.Remove(ctx, handle); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": handle})
}
