package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hamroguru/tutor-api/internal/service"
	"github.com/hamroguru/tutor-api/internal/store"
)

func TestDeleteTeacherRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	w := env.do(t, http.MethodPost, "/api/admin/delete-teacher", `{"id":"t1","password":"wrong"}`, nil)
	requireStatus(t, w, http.StatusUnauthorized)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestDeleteTeacherRequiresID(t *testing.T) {
	env := newTestEnv(t)

	payload := fmt.Sprintf(`{"password":%q}`, testAdminPassword)
	w := env.do(t, http.MethodPost, "/api/admin/delete-teacher", payload, nil)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Missing id", decodeBody(t, w)["error"])
}

func TestDeleteTeacherRemovesAccountAndProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	payload := fmt.Sprintf(`{"id":"t1","password":%q}`, testAdminPassword)
	w := env.do(t, http.MethodPost, "/api/admin/delete-teacher", payload, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, true, decodeBody(t, w)["ok"])

	requireStatus(t, env.do(t, http.MethodGet, "/api/teacher/t1", "", nil), http.StatusNotFound)
}

func TestDeleteTeacherIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	payload := fmt.Sprintf(`{"id":"never-existed","password":%q}`, testAdminPassword)
	w := env.do(t, http.MethodPost, "/api/admin/delete-teacher", payload, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestEmptyConfiguredPasswordFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemory()
	teacherSvc := service.NewTeacherService(st, nil, nil, nil)
	h := NewAdminHandler(teacherSvc, "")

	assert.False(t, h.authorized(""))
	assert.False(t, h.authorized("anything"))
}

func TestExportTeachersCSV(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	w := env.do(t, http.MethodGet, "/api/admin/export-teachers", "",
		map[string]string{"X-Admin-Password": testAdminPassword})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "teachers.csv")
	assert.Contains(t, w.Body.String(), "ID,Name,Email")
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestExportTeachersPDF(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	w := env.do(t, http.MethodGet, "/api/admin/export-teachers?format=pdf", "",
		map[string]string{"X-Admin-Password": testAdminPassword})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, len(w.Body.Bytes()) > 0)
}

func TestExportTeachersRequiresPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/export-teachers", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestExportTeachersRejectsUnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/export-teachers?format=xlsx", "",
		map[string]string{"X-Admin-Password": testAdminPassword})
	requireStatus(t, w, http.StatusBadRequest)
}
