package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/config"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

const (
	adminToken   = "admin-token"
	studentToken = "student-token"
)

type routerFixture struct {
	engine    *gin.Engine
	auth      *authServiceMock
	grades    *crudStub[models.Grade, models.GradeRequest, models.UpdateGradeRequest]
	faculty   *crudStub[models.Faculty, models.FacultyRequest, models.UpdateFacultyRequest]
	schedules *scheduleServiceMock
	swaps     *swapServiceMock
	audit     *auditRecorder
	db        *pingerStub
}

func newRouterFixture(gate string) *routerFixture {
	gin.SetMode(gin.TestMode)
	f := &routerFixture{
		engine:    gin.New(),
		auth:      &authServiceMock{},
		grades:    &crudStub[models.Grade, models.GradeRequest, models.UpdateGradeRequest]{},
		faculty:   &crudStub[models.Faculty, models.FacultyRequest, models.UpdateFacultyRequest]{},
		schedules: &scheduleServiceMock{schedules: []models.Schedule{}},
		swaps:     &swapServiceMock{swap: &models.SwapRequest{ID: "swap-1", Status: models.SwapStatusPending}},
		audit:     &auditRecorder{},
		db:        &pingerStub{},
	}
	tokens := tokenValidatorStub{
		adminToken:   {UserID: "u-admin", Role: models.RoleAdmin, Name: "Root"},
		studentToken: {UserID: "u-student", Role: models.RoleStudent, Name: "Sam"},
	}
	RegisterRoutes(f.engine, Handlers{
		Auth:       NewAuthHandler(f.auth),
		Faculty:    NewFacultyHandler(f.faculty),
		Grades:     NewGradeHandler(f.grades),
		Classrooms: NewRoomHandler(&crudStub[models.Room, models.RoomRequest, models.UpdateRoomRequest]{}),
		Labs:       NewRoomHandler(&crudStub[models.Room, models.RoomRequest, models.UpdateRoomRequest]{}),
		Subjects:   NewSubjectHandler(&crudStub[models.Subject, models.SubjectRequest, models.UpdateSubjectRequest]{}),
		Schedules:  NewScheduleHandler(f.schedules),
		Swaps:      NewSwapHandler(f.swaps),
		Leaves:     NewLeaveHandler(&crudStub[models.Leave, models.LeaveRequest, models.UpdateLeaveRequest]{}),
		Feedback:   NewFeedbackHandler(&crudStub[models.Feedback, models.FeedbackRequest, models.UpdateFeedbackRequest]{}),
		Metrics:    NewMetricsHandler(service.NewMetricsService(), f.db),
		Audit:      NewAuditHandler(f.audit),
	}, RouterOptions{Gate: gate, Tokens: tokens, Audit: f.audit})
	return f
}

func (f *routerFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

const signupPayload = `{"role":"student","name":"Sam","email":"sam@example.com","password":"secret"}`

func TestSignupGateRequiresAdmin(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodPost, "/signup", "", signupPayload)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", messageOf(t, w))

	w = f.do(http.MethodPost, "/signup", "forged", signupPayload)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/signup", studentToken, signupPayload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodPost, "/signup", adminToken, signupPayload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", messageOf(t, w))
	assert.Equal(t, 1, f.auth.signups)

	w = f.do(http.MethodGet, "/grades", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGateAllProtectsCollections(t *testing.T) {
	f := newRouterFixture(config.AuthGateAll)

	w := f.do(http.MethodGet, "/faculty", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/faculty", studentToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/login", "", `{"role":"admin","email":"a@b.c","password":"x"}`)
	assert.NotEqual(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateNoneLeavesSignupOpen(t *testing.T) {
	f := newRouterFixture(config.AuthGateNone)

	w := f.do(http.MethodPost, "/signup", "", signupPayload)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestSignupConflictIsBadRequest(t *testing.T) {
	f := newRouterFixture(config.AuthGateNone)
	f.auth.signupErr = appErrors.Clone(appErrors.ErrConflict, "User already exists")

	w := f.do(http.MethodPost, "/signup", "", signupPayload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", messageOf(t, w))
}

func TestLoginReturnsTokenRoleAndName(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)
	f.auth.login = &models.LoginResponse{Token: "jwt", Role: models.RoleTeacher, Name: "Alice Smith"}

	w := f.do(http.MethodPost, "/login", "", `{"role":"teacher","email":"alice smith","password":"A1234"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"jwt","role":"teacher","name":"Alice Smith"}`, w.Body.String())

	f.auth.login, f.auth.loginErr = nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	w = f.do(http.MethodPost, "/login", "", `{"role":"teacher","email":"alice smith","password":"B1234"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", messageOf(t, w))
}

func TestMalformedBodyIsValidationError(t *testing.T) {
	f := newRouterFixture(config.AuthGateNone)

	w := f.do(http.MethodPost, "/grades", "", `{"year":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", messageOf(t, w))
}

func TestMeReturnsClaims(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodGet, "/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/me", studentToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
	assert.Contains(t, w.Body.String(), `"id":"u-student"`)
}

func TestCollectionErrorsMapToStatus(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	f.grades.err = appErrors.Clone(appErrors.ErrNotFound, "Grade not found")
	w := f.do(http.MethodDelete, "/grades/missing", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Grade not found", messageOf(t, w))
	assert.Equal(t, "missing", f.grades.lastID)

	f.grades.err = errors.New("pq: connection reset")
	w = f.do(http.MethodGet, "/grades", "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", messageOf(t, w))
}

func TestCollectionUpdatePassesIDAndPartialBody(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)
	f.faculty.item = models.Faculty{ID: "f1", Name: "Bob"}

	w := f.do(http.MethodPut, "/faculty/f1", "", `{"name":"Bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "f1", f.faculty.lastID)
	req, ok := f.faculty.lastInput.(models.UpdateFacultyRequest)
	require.True(t, ok)
	require.NotNil(t, req.Name)
	assert.Equal(t, "Bob", *req.Name)
	assert.Contains(t, w.Body.String(), `"_id":"f1"`)

	w = f.do(http.MethodPost, "/faculty", "", `{"name":"Bob"}`)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestScheduleReplaceIsAudited(t *testing.T) {
	f := newRouterFixture(config.AuthGateAll)

	body := `{"grade":"G1","schedules":[{"subject":"Math","faculty":"Alice","day":"Mon","time":"9"},{"subject":"Art","faculty":"Bob","day":"Tue","time":"10"}]}`
	w := f.do(http.MethodPost, "/schedules", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var out []models.Schedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, "G1", s.Grade)
	}
	assert.Equal(t, "G1", f.schedules.replaced.Grade)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, models.AuditActionScheduleReplace, entry.Action)
	require.NotNil(t, entry.Actor)
	assert.Equal(t, "u-admin", *entry.Actor)
}

func TestScheduleListForwardsFilters(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodGet, "/schedules?grade=G1&faculty=Alice", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ScheduleFilter{Grade: "G1", Faculty: "Alice"}, f.schedules.filter)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestScheduleDeleteAll(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodDelete, "/schedules", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"All schedules deleted"}`, w.Body.String())
	assert.True(t, f.schedules.cleared)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionScheduleClear, f.audit.entries[0].Action)
	assert.Nil(t, f.audit.entries[0].Actor)
}

func TestScheduleExportStreamsAttachment(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)
	f.schedules.export = &service.ScheduleExport{Filename: "timetable-G1.csv", ContentType: "text/csv", Payload: []byte("Grade\nG1\n")}

	w := f.do(http.MethodGet, "/schedules/export?format=csv&grade=G1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]string{"csv", "G1"}, f.schedules.exportArgs)
	assert.Equal(t, `attachment; filename="timetable-G1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Grade\nG1\n", w.Body.String())
}

func TestSwapApproveAndConflict(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodPut, "/swaps/swap-1/approve", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
	require.Len(t, f.audit.entries, 1)
	require.NotNil(t, f.audit.entries[0].ResourceID)
	assert.Equal(t, "swap-1", *f.audit.entries[0].ResourceID)

	f.swaps.err = appErrors.Clone(appErrors.ErrConflict, "Swap request already approved")
	w = f.do(http.MethodPut, "/swaps/swap-1/reject", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Swap request already approved", messageOf(t, w))
	assert.Len(t, f.audit.entries, 1)
}

func TestSwapCreateIsPending(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodPost, "/swaps", "", `{"fromFaculty":"Alice","toFaculty":"Bob","grade":"G1","day":"Mon","time":"9","status":"approved"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestReadinessFollowsDatabase(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	f.db.err = errors.New("connection refused")
	w = f.do(http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = f.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}

func TestAuditLogsRequireAdmin(t *testing.T) {
	f := newRouterFixture(config.AuthGateSignup)

	w := f.do(http.MethodDelete, "/schedules", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/audit-logs", studentToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/audit-logs?limit=abc", adminToken, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/audit-logs?limit=5", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.AuditActionScheduleClear)
}
