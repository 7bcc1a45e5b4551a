package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
}

func RegisterApplications(e *echo.Echo, auth *service.AuthService, applications *service.ApplicationService) {
	handler := &ApplicationHandler{applications: applications}

	jobGroup := e.Group("/api/v1/jobs/:id/applications", RequireAuth(auth))
	jobGroup.POST("", handler.apply, RequireRoles(domain.RoleStudent))
	jobGroup.GET("", handler.listForJob, RequireRoles(domain.RoleAdmin))

	group := e.Group("/api/v1/applications", RequireAuth(auth))
	group.GET("/mine", handler.listMine)
	group.GET("", handler.listAll, RequireRoles(domain.RolePlacementCell))
}

func (h *ApplicationHandler) apply(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}

	var req struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	application, err := h.applications.Apply(c.Request().Context(), actor.ID, jobID, req.CoverLetter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrProfileRequired):
			return c.JSON(http.StatusBadRequest, util.Error("please complete your profile with a resume before applying"))
		case errors.Is(err, service.ErrAlreadyApplied):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error submitting application"))
		}
	}
	return c.JSON(http.StatusCreated, util.Envelope{"application": application})
}

func (h *ApplicationHandler) listMine(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	applications, err := h.applications.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching applications"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"applications": applications})
}

func (h *ApplicationHandler) listAll(c echo.Context) error {
	applications, err := h.applications.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching applications"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"applications": applications})
}

func (h *ApplicationHandler) listForJob(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid job id"))
	}

	applications, err := h.applications.ListForJob(c.Request().Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching applications"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"applications": applications})
}
