package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

type JobHandler struct {
	jobs *service.JobService
}

func RegisterJobs(e *echo.Echo, auth *service.AuthService, jobs *service.JobService) {
	handler := &JobHandler{jobs: jobs}

	// Browsing postings needs no account; everything that writes does.
	group := e.Group("/api/v1/jobs")
	group.GET("", handler.list)
	group.POST("", handler.create, RequireAuth(auth), RequireRoles(domain.RoleAdmin))
	group.GET("/mine", handler.listMine, RequireAuth(auth), RequireRoles(domain.RoleAdmin))
	group.GET("/:id", handler.get)
	group.PUT("/:id", handler.update, RequireAuth(auth), RequireRoles(domain.RoleAdmin))
	group.DELETE("/:id", handler.remove, RequireAuth(auth), RequireRoles(domain.RoleAdmin, domain.RolePlacementCell))
}

func (h *JobHandler) list(c echo.Context) error {
	jobs, err := h.jobs.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching jobs"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"jobs": jobs})
}

func (h *JobHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}

	job, err := h.jobs.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching job"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"job": job})
}

func (h *JobHandler) create(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Description string `json:"description"`
		Salary      string `json:"salary"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.Description) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide title, company, and description"))
	}

	job, err := h.jobs.Create(c.Request().Context(), actor, service.JobInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Salary:      req.Salary,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error creating job"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"job": job})
}

func (h *JobHandler) listMine(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	jobs, err := h.jobs.ListMine(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching jobs"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"jobs": jobs})
}

func (h *JobHandler) update(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}

	var req struct {
		Title       *string `json:"title"`
		Company     *string `json:"company"`
		Description *string `json:"description"`
		Salary      *string `json:"salary"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	job, err := h.jobs.Update(c.Request().Context(), actor, id, ports.JobUpdate{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Salary:      req.Salary,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("you can only modify jobs you posted"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error updating job"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"job": job})
}

func (h *JobHandler) remove(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}

	if err := h.jobs.Delete(c.Request().Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("you are not allowed to delete this job"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error deleting job"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("job deleted"))
}
