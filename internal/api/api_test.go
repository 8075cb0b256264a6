package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celerix-dev/celerix-hrms/internal/app"
	"github.com/celerix-dev/celerix-hrms/internal/auth"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

var testNow = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

const today = "2024-03-05"

type stubClock struct{}

func (stubClock) Now() time.Time { return testNow }

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n := 0
	a := app.New(app.Options{
		Clock:  stubClock{},
		NewID:  func() string { n++; return fmt.Sprintf("id-%d", n) },
		Logger: zerolog.Nop(),
	})
	h := &Handler{Service: a, Sessions: a.Auth, Now: func() time.Time { return testNow }}

	r := gin.New()
	r.POST("/login", h.Login)
	authed := r.Group("/", RequireAuth(a.Auth))
	authed.POST("/logout", h.Logout)
	authed.GET("/session", h.Session)
	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/snapshot", h.Snapshot)
	authed.GET("/employees", h.ListEmployees)
	authed.GET("/employees/:id", h.GetEmployee)
	authed.POST("/employees", h.CreateEmployee)
	authed.PATCH("/employees/:id", h.UpdateEmployee)
	authed.DELETE("/employees/:id", h.DeleteEmployee)
	authed.GET("/attendance", h.ListAttendance)
	authed.POST("/attendance", h.RecordAttendance)
	return r
}

func send(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email, password string) {
	t.Helper()
	w := send(t, r, http.MethodPost, "/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin_TrimsInput(t *testing.T) {
	r := setupEngine(t)

	w := send(t, r, http.MethodPost, "/login", map[string]string{"email": "  manager@demo.com ", "password": " manager123 "})
	require.Equal(t, http.StatusOK, w.Code)

	sess := decode[schema.Session](t, w)
	assert.Equal(t, auth.Token, sess.Token)
	assert.Equal(t, "u2", sess.User.ID)
	assert.Equal(t, schema.RoleManager, sess.User.Role)
}

func TestLogin_Errors(t *testing.T) {
	r := setupEngine(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"wrong password", map[string]string{"email": "admin@demo.com", "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "who@demo.com", "password": "admin123"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"email": "admin@demo.com"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(t, r, http.MethodPost, "/login", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := send(t, r, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_AndLogout(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "employee@demo.com", "employee123")

	w := send(t, r, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Eve Employee", decode[schema.User](t, w).Name)

	w = send(t, r, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(t, r, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"not authenticated"}`, w.Body.String())
}

func TestSession_WithoutAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := app.New(app.Options{Logger: zerolog.Nop()})
	h := &Handler{Service: a, Sessions: a.Auth}

	r := gin.New()
	r.GET("/session", h.Session)

	w := send(t, r, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"not authenticated"}`, w.Body.String())
}

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "admin@demo.com", "admin123")

	for _, header := range []string{"", "Token " + auth.Token, "Bearer wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestCreateEmployee_Defaults(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "admin@demo.com", "admin123")

	w := send(t, r, http.MethodPost, "/employees", map[string]string{
		"name":       "Nia New",
		"email":      "nia@demo.com",
		"department": "Finance",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	e := decode[schema.Employee](t, w)
	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, schema.EmployeeActive, e.Status)
	assert.Equal(t, today, e.JoinDate)

	w = send(t, r, http.MethodGet, "/employees/id-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nia New", decode[schema.Employee](t, w).Name)
}

func TestCreateEmployee_Validation(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "admin@demo.com", "admin123")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "x@demo.com"}},
		{"bad email", map[string]string{"name": "X", "email": "not-an-email"}},
		{"bad status", map[string]string{"name": "X", "email": "x@demo.com", "status": "retired"}},
		{"bad join date", map[string]string{"name": "X", "email": "x@demo.com", "joinDate": "05/03/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(t, r, http.MethodPost, "/employees", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := send(t, r, http.MethodGet, "/employees", nil)
	assert.Len(t, decode[[]schema.Employee](t, w), 3)
}

func TestListEmployees_Query(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "employee@demo.com", "employee123")

	w := send(t, r, http.MethodGet, "/employees?q=SUPPORT", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]schema.Employee](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "e2", list[0].ID)

	w = send(t, r, http.MethodGet, "/employees?q=nobody", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateEmployee(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "manager@demo.com", "manager123")

	w := send(t, r, http.MethodPatch, "/employees/e3", map[string]string{"status": "active"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	e := decode[schema.Employee](t, w)
	assert.Equal(t, schema.EmployeeActive, e.Status)
	assert.Equal(t, "Pat People", e.Name)

	w = send(t, r, http.MethodPatch, "/employees/missing", map[string]string{"title": "CTO"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(t, r, http.MethodPatch, "/employees/e3", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEmployee_CascadesAttendance(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "admin@demo.com", "admin123")

	w := send(t, r, http.MethodDelete, "/employees/e1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(t, r, http.MethodGet, "/employees/e1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(t, r, http.MethodGet, "/attendance?date=all", nil)
	entries := decode[[]schema.AttendanceEntry](t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "e2", entries[0].EmployeeID)

	w = send(t, r, http.MethodDelete, "/employees/e1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAttendance_DateFilter(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "employee@demo.com", "employee123")

	w := send(t, r, http.MethodGet, "/attendance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]schema.AttendanceEntry](t, w), 2)

	w = send(t, r, http.MethodGet, "/attendance?date=2020-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = send(t, r, http.MethodGet, "/attendance?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordAttendance_UsesSessionUser(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "admin@demo.com", "admin123")

	w := send(t, r, http.MethodPost, "/attendance", map[string]string{
		"employeeId": "e3",
		"recordedBy": "someone-else",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	entry := decode[schema.AttendanceEntry](t, w)
	assert.Equal(t, "u1", entry.RecordedBy)
	assert.Equal(t, today, entry.Date)
	assert.Equal(t, schema.AttendancePresent, entry.Status)

	w = send(t, r, http.MethodGet, "/attendance", nil)
	list := decode[[]schema.AttendanceEntry](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, entry.ID, list[0].ID)

	w = send(t, r, http.MethodPost, "/attendance", map[string]string{"employeeId": "e3", "status": "sick"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboard(t *testing.T) {
	r := setupEngine(t)
	login(t, r, "employee@demo.com", "employee123")

	w := send(t, r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	d := decode[schema.Dashboard](t, w)
	assert.Equal(t, today, d.Date)
	assert.Equal(t, 2, d.ActiveEmployees)
	assert.Equal(t, 3, d.TotalEmployees)
	assert.Equal(t, 2, d.AttendanceToday)
}
