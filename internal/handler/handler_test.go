package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hamroguru/tutor-api/internal/middleware"
	"github.com/hamroguru/tutor-api/internal/models"
	"github.com/hamroguru/tutor-api/internal/service"
	"github.com/hamroguru/tutor-api/internal/store"
)

const testAdminPassword = "admin-pass"

type testEnv struct {
	router *gin.Engine
	store  *store.MemoryStore
	auth   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	authSvc := service.NewAuthService(st, nil, nil, nil, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "tutor-api",
	})
	teacherSvc := service.NewTeacherService(st, nil, nil, nil)

	authHandler := NewAuthHandler(authSvc)
	teacherHandler := NewTeacherHandler(teacherSvc)
	adminHandler := NewAdminHandler(teacherSvc, testAdminPassword)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/list-teachers", teacherHandler.List)
	api.GET("/teacher/profile", teacherHandler.GetProfile)
	api.POST("/teacher/profile", middleware.JWT(authSvc), teacherHandler.UpdateProfile)
	api.GET("/teacher/:id", teacherHandler.Get)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register-teacher", authHandler.RegisterTeacher)

	admin := api.Group("/admin")
	admin.POST("/delete-teacher", adminHandler.DeleteTeacher)
	admin.GET("/export-teachers", adminHandler.ExportTeachers)

	return &testEnv{router: router, store: st, auth: authSvc}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedTeacher(t *testing.T, id, name, email string) {
	t.Helper()
	_, _, err := e.store.RegisterTeacher(context.Background(),
		models.User{ID: id, Email: email, Name: name, Role: models.RoleTeacher},
		models.TeacherProfile{
			ID:           id,
			UserID:       id,
			City:         "Kathmandu",
			Subjects:     "Math, Physics",
			TeachingMode: "online",
			RateType:     "hourly",
			RateAmount:   800,
		},
	)
	require.NoError(t, err)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
