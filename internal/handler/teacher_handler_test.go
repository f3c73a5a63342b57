package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTeachersEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/list-teachers", "", nil)
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["teachers"])
}

func TestGetTeacherByID(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	w := env.do(t, http.MethodGet, "/api/teacher/t1", "", nil)
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	teacher := body["teacher"].(map[string]interface{})
	assert.Equal(t, "t1", teacher["id"])
	profile := teacher["teacherProfile"].(map[string]interface{})
	assert.Equal(t, "Kathmandu", profile["city"])
}

func TestGetTeacherNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/teacher/missing", "", nil)
	requireStatus(t, w, http.StatusNotFound)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Teacher not found", body["error"])
}

func TestGetProfileByOwner(t *testing.T) {
	env := newTestEnv(t)
	env.seedTeacher(t, "t1", "Alice", "t1@example.com")

	w := env.do(t, http.MethodGet, "/api/teacher/profile?userId=t1", "", nil)
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "t1", profile["id"])
}

func TestGetProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/teacher/profile?userId=missing", "", nil)
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Profile not found", decodeBody(t, w)["error"])
}

func TestGetProfileRequiresUserID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/teacher/profile", "", nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/teacher/profile", `{"city":"Pokhara"}`, nil)
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateProfileWithToken(t *testing.T) {
	env := newTestEnv(t)

	register := `{"userId":"t1","email":"t1@example.com","name":"Alice","password":"hunter22","subjects":["Math"],"city":"Kathmandu"}`
	requireStatus(t, env.do(t, http.MethodPost, "/api/auth/register-teacher", register, nil), http.StatusCreated)

	login := env.do(t, http.MethodPost, "/api/auth/login", `{"email":"t1@example.com","password":"hunter22"}`, nil)
	requireStatus(t, login, http.StatusOK)
	token := decodeBody(t, login)["token"].(string)
	require.NotEmpty(t, token)

	w := env.do(t, http.MethodPost, "/api/teacher/profile",
		`{"city":"Pokhara","rateAmount":"900","subjects":["Math","Chemistry"]}`,
		map[string]string{"Authorization": "Bearer " + token})
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Equal(t, "Profile updated successfully", body["message"])
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "Pokhara", profile["city"])
	assert.Equal(t, float64(900), profile["rateAmount"])
	assert.Equal(t, "Math, Chemistry", profile["subjects"])
}

func TestUpdateProfileRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/teacher/profile", `{"city":"Pokhara"}`,
		map[string]string{"Authorization": "Bearer not-a-token"})
	requireStatus(t, w, http.StatusUnauthorized)
}
