package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// hrHandler covers attendance, leave requests and capability permission
// requests.
type hrHandler struct {
	hrService portssvc.HRSvcFacade
}

func newHRHandler(hs portssvc.HRSvcFacade) *hrHandler {
	return &hrHandler{hrService: hs}
}

func registerHRRoutes(rg *gin.RouterGroup, hrService portssvc.HRSvcFacade) {
	h := newHRHandler(hrService)

	attendance := rg.Group("/attendance")
	{
		attendance.POST("/check-in", h.checkIn)
		attendance.POST("/check-out", h.checkOut)
		attendance.GET("", h.listAttendance)
	}

	leave := rg.Group("/leave-requests")
	{
		leave.POST("", h.requestLeave)
		leave.GET("", h.listLeaveRequests)
		leave.POST("/:id/review", h.reviewLeave)
	}

	permissions := rg.Group("/permission-requests")
	{
		permissions.POST("", h.requestPermission)
		permissions.GET("", h.listPermissionRequests)
		permissions.POST("/:id/review", h.reviewPermission)
	}
}

// checkIn godoc
// @Summary Record the caller's daily check-in
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   attendance body dto.CheckInRequest true "Check-in details"
// @Success 201 {object} dto.AttendanceResponse
// @Failure 409 {object} map[string]string "Already checked in today"
// @Security BearerAuth
// @Router /attendance/check-in [post]
func (h *hrHandler) checkIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employeeID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	att, err := h.hrService.CheckIn(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to check in")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttendanceResponse(att))
}

// checkOut godoc
// @Summary Record the caller's check-out
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   attendance body dto.CheckOutRequest true "Check-out details"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} map[string]string "No check-in for the day"
// @Security BearerAuth
// @Router /attendance/check-out [post]
func (h *hrHandler) checkOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employeeID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	att, err := h.hrService.CheckOut(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to check out")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceResponse(att))
}

// listAttendance godoc
// @Summary List the caller's attendance records
// @Tags hr
// @Produce  json
// @Param   limit query int false "Limit number of results" default(31)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AttendanceResponse
// @Security BearerAuth
// @Router /attendance [get]
func (h *hrHandler) listAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "31"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	employeeID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	records, err := h.hrService.ListAttendance(c.Request.Context(), employeeID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list attendance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceResponses(records))
}

// requestLeave godoc
// @Summary Submit a leave request
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   leave body dto.CreateLeaveRequest true "Leave details"
// @Success 201 {object} dto.LeaveRequestResponse
// @Failure 400 {object} map[string]string "End date precedes start date"
// @Security BearerAuth
// @Router /leave-requests [post]
func (h *hrHandler) requestLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestLeave", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employeeID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	lr, err := h.hrService.RequestLeave(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit leave request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeaveRequestResponse(lr))
}

// reviewLeave godoc
// @Summary Approve or reject a leave request
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   id path string true "Leave request ID"
// @Param   review body dto.ReviewRequest true "Review decision"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 400 {object} map[string]string "Request already reviewed"
// @Failure 403 {object} map[string]string "Missing review capability"
// @Security BearerAuth
// @Router /leave-requests/{id}/review [post]
func (h *hrHandler) reviewLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reviewerUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	lr, err := h.hrService.ReviewLeave(c.Request.Context(), c.Param("id"), req.Approve, reviewerUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to review leave request")
		return
	}

	logger.Info("Leave request reviewed",
		slog.String("leave_request_id", c.Param("id")),
		slog.Bool("approved", req.Approve))
	c.JSON(http.StatusOK, dto.ToLeaveRequestResponse(lr))
}

// listLeaveRequests godoc
// @Summary List leave requests
// @Description Reviewers may filter by employee; others see their own
// @Tags hr
// @Produce  json
// @Param   employee_id query string false "Filter by employee"
// @Param   status query string false "Filter by review status"
// @Success 200 {array} dto.LeaveRequestResponse
// @Security BearerAuth
// @Router /leave-requests [get]
func (h *hrHandler) listLeaveRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var employeeID *string
	var status *domain.ReviewStatus
	if v := c.Query("employee_id"); v != "" {
		employeeID = &v
	}
	if v := c.Query("status"); v != "" {
		s := domain.ReviewStatus(v)
		status = &s
	}

	requests, err := h.hrService.ListLeaveRequests(c.Request.Context(), employeeID, status, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list leave requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveRequestResponses(requests))
}

// requestPermission godoc
// @Summary Request an additional capability
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   permission body dto.CreatePermissionRequest true "Capability and justification"
// @Success 201 {object} dto.PermissionRequestResponse
// @Failure 400 {object} map[string]string "Unknown capability code"
// @Security BearerAuth
// @Router /permission-requests [post]
func (h *hrHandler) requestPermission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	pr, err := h.hrService.RequestPermission(c.Request.Context(), req, requesterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit permission request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPermissionRequestResponse(pr))
}

// reviewPermission godoc
// @Summary Approve or reject a permission request
// @Tags hr
// @Accept  json
// @Produce  json
// @Param   id path string true "Permission request ID"
// @Param   review body dto.ReviewRequest true "Review decision"
// @Success 200 {object} dto.PermissionRequestResponse
// @Failure 400 {object} map[string]string "Request already reviewed"
// @Failure 403 {object} map[string]string "Missing review capability"
// @Security BearerAuth
// @Router /permission-requests/{id}/review [post]
func (h *hrHandler) reviewPermission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reviewerUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	pr, err := h.hrService.ReviewPermission(c.Request.Context(), c.Param("id"), req.Approve, reviewerUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to review permission request")
		return
	}
	c.JSON(http.StatusOK, dto.ToPermissionRequestResponse(pr))
}

// listPermissionRequests godoc
// @Summary List permission requests
// @Tags hr
// @Produce  json
// @Param   requester_id query string false "Filter by requester"
// @Param   status query string false "Filter by review status"
// @Success 200 {array} dto.PermissionRequestResponse
// @Security BearerAuth
// @Router /permission-requests [get]
func (h *hrHandler) listPermissionRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var requesterID *string
	var status *domain.ReviewStatus
	if v := c.Query("requester_id"); v != "" {
		requesterID = &v
	}
	if v := c.Query("status"); v != "" {
		s := domain.ReviewStatus(v)
		status = &s
	}

	requests, err := h.hrService.ListPermissionRequests(c.Request.Context(), requesterID, status, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list permission requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToPermissionRequestResponses(requests))
}
