package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func RegisterProfiles(e *echo.Echo, auth *service.AuthService, profiles *service.ProfileService) {
	handler := &ProfileHandler{profiles: profiles}

	group := e.Group("/api/v1/profiles", RequireAuth(auth))
	group.PUT("", handler.upsert)
	group.POST("", handler.upsert)
	group.GET("/me", handler.getMine)
	group.GET("", handler.listAll, RequireRoles(domain.RolePlacementCell))
}

// upsert expects a multipart form so the resume document can ride along with
// the profile fields.
func (h *ProfileHandler) upsert(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide name and email"))
	}

	age, err := strconv.Atoi(strings.TrimSpace(c.FormValue("age")))
	if err != nil || age <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("please provide a valid age"))
	}

	gender, err := domain.ParseGender(strings.TrimSpace(c.FormValue("gender")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("gender must be one of Male, Female, or Other"))
	}

	var gpa *float64
	if raw := strings.TrimSpace(c.FormValue("gpa")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 10 {
			return c.JSON(http.StatusBadRequest, util.Error("please provide a valid GPA"))
		}
		gpa = &parsed
	}

	input := service.ProfileInput{
		Name:   name,
		Email:  email,
		Age:    age,
		Gender: gender,
		Skills: splitSkills(c.FormValue("skills")),
		GPA:    gpa,
	}

	var resume *service.ResumeUpload
	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, util.Error("server error reading resume"))
		}
		defer file.Close()
		resume = &service.ResumeUpload{
			Reader:      file,
			Size:        fileHeader.Size,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	profile, err := h.profiles.Upsert(c.Request().Context(), actor.ID, input, resume)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResumeRequired):
			return c.JSON(http.StatusBadRequest, util.Error("a resume file is required when creating your profile"))
		case errors.Is(err, service.ErrResumeTooLarge),
			errors.Is(err, service.ErrResumeUnsupported):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error saving profile"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"profile": profile})
}

func (h *ProfileHandler) getMine(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	profile, err := h.profiles.Get(c.Request().Context(), actor.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching profile"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"profile": profile})
}

func (h *ProfileHandler) listAll(c echo.Context) error {
	profiles, err := h.profiles.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error fetching profiles"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"profiles": profiles})
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
