package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

type SkillHandler struct {
	skills *service.SkillService
}

func RegisterSkills(e *echo.Echo, auth *service.AuthService, skills *service.SkillService) {
	handler := &SkillHandler{skills: skills}
	e.GET("/api/v1/skills", handler.search, RequireAuth(auth))
}

func (h *SkillHandler) search(c echo.Context) error {
	matches := h.skills.Search(c.QueryParam("search"))
	return c.JSON(http.StatusOK, util.Envelope{"skills": matches})
}
