package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamroguru/tutor-api/internal/dto"
	"github.com/hamroguru/tutor-api/internal/service"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
	"github.com/hamroguru/tutor-api/pkg/export"
)

// AdminHandler serves the password-gated maintenance endpoints.
type AdminHandler struct {
	teachers *service.TeacherService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	password string
}

// NewAdminHandler constructs an AdminHandler. An empty password disables
// every admin operation.
func NewAdminHandler(teachers *service.TeacherService, password string) *AdminHandler {
	return &AdminHandler{
		teachers: teachers,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		password: password,
	}
}

func (h *AdminHandler) authorized(supplied string) bool {
	if h.password == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.password), []byte(supplied)) == 1
}

// DeleteTeacher godoc
// @Summary Remove a teacher account and profile
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.DeleteTeacherRequest true "Teacher ID and admin password"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/delete-teacher [post]
func (h *AdminHandler) DeleteTeacher(c *gin.Context) {
	var req dto.DeleteTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}

	if !h.authorized(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing id"})
		return
	}

	err := h.teachers.Delete(c.Request.Context(), req.ID)
	if err != nil && !appErrors.Is(err, appErrors.ErrNotFound) {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, gin.H{"ok": false, "error": appErr.Message})
		return
	}

	// Removing an already-absent teacher is a success: the desired end
	// state holds.
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ExportTeachers godoc
// @Summary Export the teacher directory as CSV or PDF
// @Tags Admin
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Router /api/admin/export-teachers [get]
func (h *AdminHandler) ExportTeachers(c *gin.Context) {
	if !h.authorized(c.GetHeader("X-Admin-Password")) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	dataset, err := h.teachers.ExportDataset(c.Request.Context())
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, gin.H{"ok": false, "error": appErr.Message})
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Teacher Directory")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="teachers.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="teachers.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unsupported format"})
	}
}
