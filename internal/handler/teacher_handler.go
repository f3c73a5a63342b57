package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamroguru/tutor-api/internal/dto"
	"github.com/hamroguru/tutor-api/internal/middleware"
	"github.com/hamroguru/tutor-api/internal/service"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
	"github.com/hamroguru/tutor-api/pkg/response"
)

// TeacherHandler serves the public teacher directory and the profile
// endpoints.
type TeacherHandler struct {
	teachers *service.TeacherService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List godoc
// @Summary List all teacher profiles with user data
// @Tags Teachers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/list-teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	listings, err := h.teachers.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(listings),
		"teachers": listings,
	})
}

// Get godoc
// @Summary Get one teacher by ID
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/teacher/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	listing, err := h.teachers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			err = appErrors.Clone(appErrors.ErrNotFound, "Teacher not found")
		}
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "teacher": listing})
}

// GetProfile godoc
// @Summary Get the teacher profile owned by a user
// @Tags Teachers
// @Produce json
// @Param userId query string true "Owning user ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/teacher/profile [get]
func (h *TeacherHandler) GetProfile(c *gin.Context) {
	userID := c.Query("userId")
	listing, err := h.teachers.GetProfile(c.Request.Context(), userID)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrNotFound.Code {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": listing})
}

// UpdateProfile godoc
// @Summary Update the caller's own teacher profile
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Router /api/teacher/profile [post]
func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.FailMessage(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	profile, err := h.teachers.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
