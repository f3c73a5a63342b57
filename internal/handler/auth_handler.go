package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamroguru/tutor-api/internal/dto"
	"github.com/hamroguru/tutor-api/internal/service"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
	"github.com/hamroguru/tutor-api/pkg/response"
)

// AuthHandler wires the registration and login endpoints to the auth
// service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register a user account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailMessage(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing required fields"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FailMessage(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Authenticate by email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailMessage(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing email or password"))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FailMessage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// RegisterTeacher godoc
// @Summary Register a teacher with profile
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.RegisterTeacherRequest true "Teacher registration payload"
// @Success 201 {object} map[string]interface{}
// @Router /api/auth/register-teacher [post]
func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	var req dto.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UserId and email are required"})
		return
	}

	user, profile, err := h.service.RegisterTeacher(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Teacher registered successfully",
		"user": gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"role":           user.Role,
			"teacherProfile": profile,
		},
	})
}
