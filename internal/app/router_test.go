package app

import (
	"bytes"
	"encoding/json"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.RateLimit.MaxRequests = 10000
	cfg.RateLimit.WindowMinutes = 1

	db := testutil.NewDB(t)
	router, _ := newRouter(cfg, db, nil)
	return &testServer{t: t, db: db, cfg: cfg, router: router}
}

func (s *testServer) token(user *model.User) string {
	s.t.Helper()
	tok, err := util.GenerateJWT(user, s.cfg.JWT.Secret, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestErrorEnvelope_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/courses/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "course not found", body["message"])
	assert.Equal(t, "NotFoundError", body["error"])
}

func TestUnknownRoute_UsesErrorEnvelope(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFoundError", decode(t, w)["error"])
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "learner@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", model.RoleAdmin)

	req := map[string]string{"name": "Programming"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/categories", "", req).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/categories", s.token(user), req).Code)
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/categories", s.token(admin), req).Code)

	w := s.do(http.MethodPost, "/api/categories", s.token(admin), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ConflictError", decode(t, w)["error"])
}

func TestValidationError_ListsFields(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", model.RoleAdmin)

	w := s.do(http.MethodPost, "/api/courses", s.token(admin), map[string]string{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ValidationError", body["error"])
	assert.Contains(t, body["message"], "title")
}

func TestListEnvelope(t *testing.T) {
	s := newTestServer(t)
	for _, title := range []string{"a", "b", "c"} {
		testutil.CreateCourse(t, s.db, title, nil, 0)
	}

	w := s.do(http.MethodGet, "/api/courses?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["totalPages"])
	assert.EqualValues(t, 2, body["currentPage"])
}

func TestEnroll_StatusReflectsCreation(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "learner@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, s.db, "Go", nil, 0)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/courses/"+course.ID+"/enroll", "", nil).Code)
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/courses/"+course.ID+"/enroll", s.token(user), nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/courses/"+course.ID+"/enroll", s.token(user), nil).Code)

	w := s.do(http.MethodGet, "/api/users/me/enrollments", s.token(user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestGetQuiz_RedactsCorrectAnswers(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "learner@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", model.RoleAdmin)
	course := testutil.CreateCourse(t, s.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, s.db, course.ID, "m", 0)
	quiz := testutil.CreateQuiz(t, s.db, testutil.ModulePlacement(mod), "check",
		model.Question{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
	)
	path := "/api/quizzes/" + quiz.ID

	anonymous := s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, anonymous.Code)
	assert.False(t, strings.Contains(anonymous.Body.String(), "correctAnswer"))

	asAdmin := s.do(http.MethodGet, path, s.token(admin), nil)
	assert.Contains(t, asAdmin.Body.String(), `"correctAnswer":1`)

	beforeAttempt := s.do(http.MethodGet, path+"?review=true", s.token(user), nil)
	assert.NotContains(t, beforeAttempt.Body.String(), "correctAnswer")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/courses/"+course.ID+"/enroll", s.token(user), nil).Code)
	submit := s.do(http.MethodPost, path+"/submit", s.token(user), map[string][]int{"answers": {0}})
	require.Equal(t, http.StatusOK, submit.Code, submit.Body.String())
	assert.Contains(t, submit.Body.String(), `"correctAnswer":1`)

	assert.NotContains(t, s.do(http.MethodGet, path, s.token(user), nil).Body.String(), "correctAnswer")
	assert.Contains(t, s.do(http.MethodGet, path+"?review=true", s.token(user), nil).Body.String(), `"correctAnswer":1`)
}

func TestGetModuleAndSubModule_RedactQuizAnswers(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", model.RoleAdmin)
	course := testutil.CreateCourse(t, s.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, s.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, s.db, mod.ID, "s", 0)
	question := model.Question{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1}
	testutil.CreateQuiz(t, s.db, testutil.ModulePlacement(mod), "module check", question)
	testutil.CreateQuiz(t, s.db, testutil.SubModulePlacement(mod, sub), "submodule check", question)

	for _, path := range []string{"/api/modules/" + mod.ID, "/api/submodules/" + sub.ID} {
		anonymous := s.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, anonymous.Code, path)
		assert.Contains(t, anonymous.Body.String(), `"question":"2+2?"`, path)
		assert.NotContains(t, anonymous.Body.String(), "correctAnswer", path)

		asAdmin := s.do(http.MethodGet, path, s.token(admin), nil)
		assert.Contains(t, asAdmin.Body.String(), `"correctAnswer":1`, path)
	}
}

func TestDeleteModule_BlockedByContent(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", model.RoleAdmin)
	course := testutil.CreateCourse(t, s.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, s.db, course.ID, "m", 0)
	testutil.CreateLesson(t, s.db, testutil.ModulePlacement(mod), "l", 0)

	w := s.do(http.MethodDelete, "/api/modules/"+mod.ID, s.token(admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ConflictError", body["error"])
	assert.Contains(t, body["message"], "1 lesson")
}

func TestSearch_RejectsUnknownType(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/search?type=video", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/search?q=nothing", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["total"])
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
}
