package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-hrms/pkg/schema"
	"github.com/celerix-dev/celerix-hrms/pkg/sdk"
)

// AllDates asks the attendance listing for every date.
const AllDates = sdk.AllDates

// Handler serves the HR service over HTTP.
type Handler struct {
	Service  sdk.Service
	Sessions SessionResolver
	Now      func() time.Time // defaults to time.Now
}

func (h *Handler) today() string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().Format(schema.DateLayout)
}

// respondError maps domain errors to status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schema.ErrEmployeeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schema.ErrInvalidCredentials), errors.Is(err, schema.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, schema.ErrForbidden):
		status = http.StatusForbidden
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.Service.Login(c.Request.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Service.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) Session(c *gin.Context) {
	sess, ok := SessionFrom(c)
	if !ok {
		respondError(c, schema.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, sess.User)
}

// --- Dashboard ---

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.Service.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Snapshot(c *gin.Context) {
	s, err := h.Service.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// --- Employees ---

type employeeRequest struct {
	Name       string                `json:"name" binding:"required"`
	Email      string                `json:"email" binding:"required,email"`
	Department string                `json:"department"`
	Title      string                `json:"title"`
	Status     schema.EmployeeStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	JoinDate   string                `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	Manager    string                `json:"manager"`
}

type employeePatchRequest struct {
	Name       *string                `json:"name" binding:"omitempty,min=1"`
	Email      *string                `json:"email" binding:"omitempty,email"`
	Department *string                `json:"department"`
	Title      *string                `json:"title"`
	Status     *schema.EmployeeStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	JoinDate   *string                `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	Manager    *string                `json:"manager"`
}

func (h *Handler) ListEmployees(c *gin.Context) {
	list, err := h.Service.ListEmployees(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetEmployee(c *gin.Context) {
	e, err := h.Service.GetEmployee(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var in employeeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if in.Status == "" {
		in.Status = schema.EmployeeActive
	}
	if in.JoinDate == "" {
		in.JoinDate = h.today()
	}

	e, err := h.Service.AddEmployee(schema.EmployeeFields(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	var in employeePatchRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	e, err := h.Service.UpdateEmployee(c.Param("id"), schema.EmployeePatch(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	if err := h.Service.DeleteEmployee(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// --- Attendance ---

type attendanceRequest struct {
	EmployeeID string                  `json:"employeeId" binding:"required"`
	Date       string                  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Status     schema.AttendanceStatus `json:"status" binding:"omitempty,oneof=present absent remote"`
	Notes      string                  `json:"notes"`
}

// ListAttendance defaults to today's entries; ?date=all returns the whole log.
func (h *Handler) ListAttendance(c *gin.Context) {
	date := c.Query("date")
	switch date {
	case "":
		date = h.today()
	case AllDates:
		date = ""
	default:
		if _, err := time.Parse(schema.DateLayout, date); err != nil {
			badRequest(c, errors.New("date must be YYYY-MM-DD or all"))
			return
		}
	}

	list, err := h.Service.ListAttendance(date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) RecordAttendance(c *gin.Context) {
	var in attendanceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if in.Date == "" {
		in.Date = h.today()
	}
	if in.Status == "" {
		in.Status = schema.AttendancePresent
	}

	recordedBy := "system"
	if sess, ok := SessionFrom(c); ok {
		recordedBy = sess.User.ID
	}

	entry, err := h.Service.RecordAttendance(schema.AttendanceFields{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Status:     in.Status,
		Notes:      in.Notes,
		RecordedBy: recordedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
